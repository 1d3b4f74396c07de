package service

import (
	"context"
	"errors"
	"testing"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServiceRecords(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewAuditLogRepo()
	svc := NewAuditService(testLogger(), repo)
	userID := uuid.New()

	require.NoError(t, svc.LogCreate(ctx, nil, &userID, entity.AuditActionDoctorCreate, "doctor", "d-1", map[string]string{"name": "Dr. Rao"}))
	require.NoError(t, svc.LogUpdate(ctx, nil, &userID, entity.AuditActionDoctorUpdate, "doctor", "d-1", "old", "new"))
	require.NoError(t, svc.LogDeactivate(ctx, nil, &userID, entity.AuditActionDoctorDeactivate, "doctor", "d-1", "old"))

	require.Len(t, repo.Logs, 3)
	assert.Equal(t, []string{
		entity.AuditActionDoctorCreate,
		entity.AuditActionDoctorUpdate,
		entity.AuditActionDoctorDeactivate,
	}, repo.Actions())

	created := repo.Logs[0]
	require.NotNil(t, created.UserID)
	assert.Equal(t, userID, *created.UserID)
	assert.Equal(t, "doctor", created.Metadata["entity"])
	assert.Equal(t, "d-1", created.Metadata["entity_id"])
	assert.Nil(t, created.Metadata["old_value"])

	deactivated := repo.Logs[2]
	assert.Equal(t, map[string]interface{}{"is_active": false}, deactivated.Metadata["new_value"])
}

func TestAuditServiceNilUser(t *testing.T) {
	repo := testutil.NewAuditLogRepo()
	svc := NewAuditService(testLogger(), repo)
	nilID := uuid.Nil

	require.NoError(t, svc.LogCreate(context.Background(), nil, &nilID, entity.AuditActionLabTestCreate, "lab_test", "x", nil))
	assert.Nil(t, repo.Logs[0].UserID)
}

func TestAuditServicePropagatesError(t *testing.T) {
	repo := testutil.NewAuditLogRepo()
	repo.Err = errors.New("insert failed")
	svc := NewAuditService(testLogger(), repo)

	err := svc.LogCreate(context.Background(), nil, nil, entity.AuditActionMedicineCreate, "medicine", "m", nil)
	assert.EqualError(t, err, "insert failed")
}
