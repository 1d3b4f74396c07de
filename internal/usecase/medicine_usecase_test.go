package usecase

import (
	"context"
	"testing"

	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paracetamol() *dto.CreateMedicineRequest {
	return &dto.CreateMedicineRequest{
		Name:         "Paracetamol 500mg",
		GenericName:  "Acetaminophen",
		Category:     "tablet",
		MRP:          decimal.NewFromInt(40),
		SellingPrice: decimal.NewFromInt(30),
		Stock:        100,
	}
}

func TestMedicineUsecase(t *testing.T) {
	d := newDeps(t)
	uc := d.medicineUsecase()

	created, err := uc.CreateMedicine(asAdmin(), paracetamol())
	require.NoError(t, err)
	assert.Equal(t, 25, created.DiscountPercent)
	assert.True(t, created.IsActive)

	t.Run("invalid", func(t *testing.T) {
		req := paracetamol()
		req.Category = "lozenge"
		req.SellingPrice = decimal.NewFromInt(50)
		_, err := uc.CreateMedicine(asAdmin(), req)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.ElementsMatch(t, []string{"category", "selling_price"}, fieldsOf(err))
	})

	t.Run("update re-derives discount", func(t *testing.T) {
		resp, err := uc.UpdateMedicine(asAdmin(), created.ID, &dto.UpdateMedicineRequest{
			SellingPrice: ptr(decimal.NewFromInt(20)),
			Stock:        ptr(5),
		})
		require.NoError(t, err)
		assert.Equal(t, 50, resp.DiscountPercent)
		assert.Equal(t, 5, resp.Stock)
		assert.Equal(t, "Acetaminophen", resp.GenericName)
	})

	t.Run("list filters by name", func(t *testing.T) {
		req := paracetamol()
		req.Name = "Cetirizine 10mg"
		req.GenericName = ""
		req.RequiresPrescription = true
		_, err := uc.CreateMedicine(asAdmin(), req)
		require.NoError(t, err)

		list, total, err := uc.ListMedicines(context.Background(), entity.MedicineFilter{Name: "acetamin"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, created.ID, list[0].ID)

		_, total, err = uc.ListMedicines(context.Background(), entity.MedicineFilter{RequiresPrescription: ptr(true)}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("deactivate hides from list", func(t *testing.T) {
		require.NoError(t, uc.DeactivateMedicine(asAdmin(), created.ID))

		_, total, err := uc.ListMedicines(context.Background(), entity.MedicineFilter{Name: "acetamin"}, 1, 10)
		require.NoError(t, err)
		assert.Zero(t, total)

		got, err := uc.GetMedicine(context.Background(), created.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := uc.GetMedicine(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrMedicineNotFound)
		assert.ErrorIs(t, uc.DeactivateMedicine(asAdmin(), uuid.New()), ErrMedicineNotFound)
	})

	assert.Equal(t, []string{
		entity.AuditActionMedicineCreate,
		entity.AuditActionMedicineUpdate,
		entity.AuditActionMedicineCreate,
		entity.AuditActionMedicineDeactivate,
	}, d.audit.Actions())
}
