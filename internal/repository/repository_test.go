package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// captureSQL records the last UPDATE rendered on db and returns a getter.
func captureSQL(t *testing.T, db *gorm.DB) func() string {
	t.Helper()
	var last string
	err := db.Callback().Update().After("gorm:update").Register("test:capture", func(tx *gorm.DB) {
		last = tx.Statement.SQL.String()
	})
	require.NoError(t, err)
	return func() string { return last }
}
