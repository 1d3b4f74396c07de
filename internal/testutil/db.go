// Package testutil provides in-memory stand-ins for the persistence layer.
package testutil

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNoDatabase = errors.New("testutil: no database behind dry-run pool")

// dryRunPool satisfies gorm's connection interfaces without a server so
// transactions can begin and commit while statements are only rendered.
type dryRunPool struct{}

func (p *dryRunPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (p *dryRunPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNoDatabase
}

func (p *dryRunPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (p *dryRunPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (p *dryRunPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return p, nil
}

func (p *dryRunPool) Commit() error   { return nil }
func (p *dryRunPool) Rollback() error { return nil }

// NewDryRunDB returns a postgres-dialect gorm handle that renders SQL
// without executing it.
func NewDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: &dryRunPool{}}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}
