package usecase

import (
	"context"
	"testing"
	"time"

	"mediquick-api/internal/delivery/http/middleware"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/infrastructure/cache"
	"mediquick-api/internal/service"
	"mediquick-api/internal/testutil"
	"mediquick-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// monday 2030-01-07 is the first bookable weekday after the fixed clock.
var fixedNow = time.Date(2030, 1, 6, 12, 0, 0, 0, time.UTC)

type deps struct {
	db            *gorm.DB
	log           *logrus.Logger
	validator     *validator.CustomValidator
	doctors       *testutil.DoctorRepo
	consultations *testutil.ConsultationRepo
	labTests      *testutil.LabTestRepo
	medicines     *testutil.MedicineRepo
	audit         *testutil.AuditLogRepo
	auditService  service.AuditService
}

func newDeps(t *testing.T) *deps {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	doctors := testutil.NewDoctorRepo()
	audit := testutil.NewAuditLogRepo()
	return &deps{
		db:            testutil.NewDryRunDB(t),
		log:           log,
		validator:     validator.NewValidator(validator.WithEnums(entity.ValidationEnums())),
		doctors:       doctors,
		consultations: testutil.NewConsultationRepo(doctors),
		labTests:      testutil.NewLabTestRepo(),
		medicines:     testutil.NewMedicineRepo(),
		audit:         audit,
		auditService:  service.NewAuditService(log, audit),
	}
}

func (d *deps) doctorUsecase() DoctorUsecase {
	return NewDoctorUsecase(d.db, d.log, d.validator, d.doctors, d.auditService)
}

func (d *deps) medicineUsecase() MedicineUsecase {
	return NewMedicineUsecase(d.db, d.log, d.validator, d.medicines, d.auditService)
}

func (d *deps) labTestUsecase(views ViewCounter) *labTestUsecase {
	uc := NewLabTestUsecase(d.db, d.log, d.validator, d.labTests, d.auditService, cache.NewQueryCache(time.Minute), views).(*labTestUsecase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (d *deps) consultationUsecase() *consultationUsecase {
	uc := NewConsultationUsecase(d.db, d.log, d.validator, d.consultations, d.doctors, d.auditService).(*consultationUsecase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (d *deps) addDoctor(t *testing.T, mutate ...func(*entity.Doctor)) *entity.Doctor {
	t.Helper()
	doctor := &entity.Doctor{
		Name:            "Dr. Ananya Rao",
		Email:           uuid.NewString() + "@mediquick.test",
		Phone:           "+919876543210",
		Specialization:  "cardiology",
		Qualifications:  pq.StringArray{"MBBS"},
		ConsultationFee: decimal.NewFromInt(800),
		Availability: []entity.DaySlot{
			{Day: "monday", StartTime: "09:00", EndTime: "17:00", Available: true},
		},
		IsActive: true,
	}
	for _, m := range mutate {
		m(doctor)
	}
	require.NoError(t, d.doctors.Create(nil, doctor))
	return doctor
}

func asPatient(id uuid.UUID) context.Context {
	return middleware.WithUser(context.Background(), id, entity.RolePatient)
}

func asDoctor(id uuid.UUID) context.Context {
	return middleware.WithUser(context.Background(), id, entity.RoleDoctor)
}

func asAdmin() context.Context {
	return middleware.WithUser(context.Background(), uuid.New(), entity.RoleAdmin)
}

func ptr[T any](v T) *T {
	return &v
}
