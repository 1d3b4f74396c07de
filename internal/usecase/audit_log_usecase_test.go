package usecase

import (
	"context"
	"errors"
	"testing"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogUsecase(t *testing.T) {
	d := newDeps(t)
	uc := NewAuditLogUsecase(d.db, d.log, d.audit)
	admin := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, d.auditService.LogCreate(context.Background(), nil, &admin, "doctor.create", "doctor", uuid.NewString(), nil))
	}

	logs, total, err := uc.ListAuditLogs(context.Background(), entity.AuditLogFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(3), logs[0].ID)
	assert.Equal(t, &admin, logs[0].UserID)

	got, err := uc.GetAuditLog(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "doctor.create", got.Action)
	assert.Equal(t, "doctor", got.Metadata["entity"])

	_, err = uc.GetAuditLog(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)

	d.audit.Err = errors.New("boom")
	_, _, err = uc.ListAuditLogs(context.Background(), entity.AuditLogFilter{}, 1, 10)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestListAuditLogsFiltered(t *testing.T) {
	d := newDeps(t)
	uc := NewAuditLogUsecase(d.db, d.log, d.audit)
	admin, other := uuid.New(), uuid.New()
	ctx := context.Background()

	require.NoError(t, d.auditService.LogCreate(ctx, nil, &admin, entity.AuditActionDoctorCreate, "doctor", "d-1", nil))
	require.NoError(t, d.auditService.LogCreate(ctx, nil, &admin, entity.AuditActionLabTestCreate, "lab_test", "t-1", nil))
	require.NoError(t, d.auditService.LogUpdate(ctx, nil, &other, entity.AuditActionLabTestUpdate, "lab_test", "t-1", nil, nil))
	require.NoError(t, d.auditService.LogCreate(ctx, nil, &other, entity.AuditActionLabTestCreate, "lab_test", "t-2", nil))

	logs, total, err := uc.ListAuditLogs(ctx, entity.AuditLogFilter{ActionPrefix: "lab_test."}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, "t-2", logs[0].EntityID)

	logs, _, err = uc.ListAuditLogs(ctx, entity.AuditLogFilter{Entity: "lab_test", EntityID: "t-1"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditActionLabTestUpdate, logs[0].Action)

	_, total, err = uc.ListAuditLogs(ctx, entity.AuditLogFilter{UserID: &admin}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
