package service

import (
	"context"
	"errors"
	"testing"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/testutil"
	"mediquick-api/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seedFixture struct {
	svc       *SeedService
	doctors   *testutil.DoctorRepo
	labTests  *testutil.LabTestRepo
	medicines *testutil.MedicineRepo
}

func newSeedFixture(t *testing.T) seedFixture {
	doctors := testutil.NewDoctorRepo()
	labTests := testutil.NewLabTestRepo()
	medicines := testutil.NewMedicineRepo()
	v := validator.NewValidator(validator.WithEnums(entity.ValidationEnums()))
	return seedFixture{
		svc:       NewSeedService(testutil.NewDryRunDB(t), testLogger(), v, doctors, labTests, medicines),
		doctors:   doctors,
		labTests:  labTests,
		medicines: medicines,
	}
}

func TestFixturesAreValid(t *testing.T) {
	v := validator.NewValidator(validator.WithEnums(entity.ValidationEnums()))

	for _, d := range DoctorFixtures() {
		assert.NoError(t, v.ValidateEntity(&d), d.Email)
	}
	for _, lt := range LabTestFixtures() {
		lt.ApplyDefaults()
		assert.NoError(t, v.ValidateEntity(&lt), lt.Code)
	}
	for _, m := range MedicineFixtures() {
		assert.NoError(t, v.ValidateEntity(&m), m.Name)
	}
}

func TestSeedAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)

	results, err := f.svc.SeedAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, SeedResult{Collection: "doctors", Inserted: len(DoctorFixtures())}, results[0])
	assert.Equal(t, SeedResult{Collection: "lab_tests", Inserted: len(LabTestFixtures())}, results[1])
	assert.Equal(t, SeedResult{Collection: "medicines", Inserted: len(MedicineFixtures())}, results[2])

	results, err = f.svc.SeedAll(ctx)
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.Skipped, r.Collection)
		assert.Zero(t, r.Inserted, r.Collection)
	}

	assert.Equal(t, 1, f.doctors.BatchCalls)
	assert.Equal(t, 1, f.labTests.BatchCalls)
	assert.Equal(t, 1, f.medicines.BatchCalls)
	assert.Len(t, f.doctors.Doctors, len(DoctorFixtures()))
}

func TestSeedSkipsNonEmptyCollection(t *testing.T) {
	ctx := context.Background()
	f := newSeedFixture(t)
	require.NoError(t, f.labTests.Create(nil, &entity.LabTest{Name: "Existing", Code: "EXIST", Category: "blood-test"}))

	result, err := f.svc.SeedLabTests(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Zero(t, f.labTests.BatchCalls)

	count, err := f.labTests.Count(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSeedLabTestsAppliesDefaults(t *testing.T) {
	f := newSeedFixture(t)

	_, err := f.svc.SeedLabTests(context.Background())
	require.NoError(t, err)

	for _, lt := range f.labTests.Tests {
		assert.NotEmpty(t, lt.Gender, lt.Code)
		assert.NotEmpty(t, lt.SearchText, lt.Code)
		if lt.Code == "CBC" {
			assert.Equal(t, 40, lt.DiscountPercent)
		}
	}
}

func TestSeedStopsOnCountError(t *testing.T) {
	f := newSeedFixture(t)
	f.doctors.Err = errors.New("connection refused")

	results, err := f.svc.SeedAll(context.Background())
	require.Error(t, err)
	assert.Empty(t, results)
	assert.Zero(t, f.labTests.BatchCalls)
}
