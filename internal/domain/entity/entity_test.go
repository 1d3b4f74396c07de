package entity

import (
	"testing"
	"time"

	"mediquick-api/pkg/apperror"
	"mediquick-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *validator.CustomValidator {
	return validator.NewValidator(validator.WithEnums(ValidationEnums()))
}

func fieldNames(err error) []string {
	var names []string
	for _, f := range apperror.FieldsOf(err) {
		names = append(names, f.Field)
	}
	return names
}

func validDoctor() *Doctor {
	return &Doctor{
		Name:            "Dr. Ananya Rao",
		Email:           "ananya.rao@mediquick.test",
		Phone:           "+919876543210",
		Specialization:  "cardiology",
		Qualifications:  pq.StringArray{"MBBS", "MD"},
		ExperienceYears: 12,
		ConsultationFee: decimal.NewFromInt(800),
		Availability: []DaySlot{
			{Day: "monday", StartTime: "09:00", EndTime: "17:00", Available: true},
			{Day: "sunday", StartTime: "00:00", EndTime: "00:00", Available: false},
		},
		IsActive: true,
	}
}

func validLabTest() *LabTest {
	return &LabTest{
		Name:         "Complete Blood Count",
		Code:         "CBC-01",
		Category:     "blood-test",
		Tags:         pq.StringArray{"cbc", "hemoglobin"},
		MRP:          decimal.NewFromInt(1000),
		SellingPrice: decimal.NewFromInt(800),
		SampleTypes:  pq.StringArray{"blood"},
		ReportValue:  1,
		ReportUnit:   "days",
		Gender:       "both",
		AgeMax:       120,
		IsActive:     true,
	}
}

func TestDoctorValidation(t *testing.T) {
	v := newValidator()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.ValidateEntity(validDoctor()))
	})

	t.Run("missing email names email", func(t *testing.T) {
		d := validDoctor()
		d.Email = ""

		err := v.ValidateEntity(d)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, []string{"email"}, fieldNames(err))
	})

	t.Run("collects every violation", func(t *testing.T) {
		d := validDoctor()
		d.Email = ""
		d.Phone = "12ab"
		d.Specialization = "astrology"
		d.ExperienceYears = 51
		d.ConsultationFee = decimal.NewFromInt(-1)
		d.Availability[0].EndTime = "08:00"

		names := fieldNames(v.ValidateEntity(d))
		assert.ElementsMatch(t, []string{
			"email", "phone", "specialization", "experience_years",
			"consultation_fee", "availability[0].end_time",
		}, names)
	})

	t.Run("bad slot time", func(t *testing.T) {
		d := validDoctor()
		d.Availability[0].StartTime = "9:00"
		d.Availability[0].Day = "funday"

		names := fieldNames(v.ValidateEntity(d))
		assert.Contains(t, names, "availability[0].start_time")
		assert.Contains(t, names, "availability[0].day")
	})
}

func TestDoctorIsAvailableOn(t *testing.T) {
	d := validDoctor()

	assert.True(t, d.IsAvailableOn(time.Monday, "09:00"))
	assert.True(t, d.IsAvailableOn(time.Monday, "16:59"))
	assert.False(t, d.IsAvailableOn(time.Monday, "17:00"))
	assert.False(t, d.IsAvailableOn(time.Sunday, "10:00"))
	assert.False(t, d.IsAvailableOn(time.Tuesday, "10:00"))

	d.Availability = nil
	assert.True(t, d.IsAvailableOn(time.Tuesday, "10:00"))
}

func TestConsultationStatusTransitions(t *testing.T) {
	allowed := map[ConsultationStatus][]ConsultationStatus{
		ConsultationScheduled:  {ConsultationInProgress, ConsultationCancelled, ConsultationNoShow},
		ConsultationInProgress: {ConsultationCompleted, ConsultationCancelled},
	}
	all := []ConsultationStatus{
		ConsultationScheduled, ConsultationInProgress, ConsultationCompleted,
		ConsultationCancelled, ConsultationNoShow,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, ConsultationCompleted.IsTerminal())
	assert.True(t, ConsultationNoShow.IsTerminal())
	assert.False(t, ConsultationScheduled.IsTerminal())
	assert.False(t, ConsultationStatus("done").IsValid())
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentPaid))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentFailed))
	assert.True(t, PaymentFailed.CanTransitionTo(PaymentPaid))
	assert.True(t, PaymentPaid.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentPending.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPaid))
}

func TestConsultationDerived(t *testing.T) {
	c := &Consultation{
		AppointmentDate: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "14:30",
	}
	assert.Equal(t, time.Date(2030, 1, 2, 14, 30, 0, 0, time.UTC), c.AppointmentAt())
	assert.Nil(t, c.ActualDurationMinutes())

	start := time.Date(2030, 1, 2, 14, 31, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	c.StartedAt, c.EndedAt = &start, &end
	require.NotNil(t, c.ActualDurationMinutes())
	assert.Equal(t, 20, *c.ActualDurationMinutes())
}

func TestConsultationValidation(t *testing.T) {
	v := newValidator()
	rating := 6
	c := &Consultation{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentDate: time.Now().AddDate(0, 0, 1),
		AppointmentTime: "25:00",
		Type:            "fax",
		Status:          ConsultationScheduled,
		PaymentStatus:   PaymentPending,
		Rating:          &rating,
		Doctor:          &Doctor{},
	}

	names := fieldNames(v.ValidateEntity(c))
	assert.ElementsMatch(t, []string{"appointment_time", "type", "rating"}, names)
}

func TestLabTestValidation(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.ValidateEntity(validLabTest()))

	lt := validLabTest()
	lt.Code = "cbc"
	lt.Category = "astrology"
	lt.SellingPrice = decimal.NewFromInt(1200)
	lt.AgeMin, lt.AgeMax = 60, 18
	lt.SampleTypes = pq.StringArray{"blood", "hair"}
	lt.ReportUnit = "months"

	names := fieldNames(v.ValidateEntity(lt))
	assert.ElementsMatch(t, []string{
		"code", "category", "selling_price", "age_max", "sample_types[1]", "report_unit",
	}, names)
}

func TestLabTestApplyDefaults(t *testing.T) {
	lt := &LabTest{Code: " lipid-1 "}
	lt.ApplyDefaults()

	assert.Equal(t, "LIPID-1", lt.Code)
	assert.Equal(t, "both", lt.Gender)
	assert.Equal(t, "days", lt.ReportUnit)
	assert.Equal(t, 1, lt.ReportValue)
	assert.Equal(t, 120, lt.AgeMax)
}

func TestLabTestBeforeSave(t *testing.T) {
	t.Run("derives discount when unset", func(t *testing.T) {
		lt := validLabTest()
		require.NoError(t, lt.BeforeSave(nil))
		assert.Equal(t, 20, lt.DiscountPercent)
		assert.Contains(t, lt.SearchText, "hemoglobin")
		assert.True(t, lt.DiscountAmount().Equal(decimal.NewFromInt(200)))
	})

	t.Run("keeps explicit discount", func(t *testing.T) {
		lt := validLabTest()
		lt.DiscountPercent = 25
		require.NoError(t, lt.BeforeSave(nil))
		assert.Equal(t, 25, lt.DiscountPercent)
	})
}

func TestLabTestHomeCollectionCharge(t *testing.T) {
	lt := validLabTest()
	assert.True(t, lt.HomeCollectionCharge(decimal.NewFromInt(100)).IsZero())

	lt.HomeCollection = HomeCollection{
		Available: true,
		Charge:    decimal.NewFromInt(99),
		FreeAbove: decimal.NewFromInt(500),
	}
	assert.True(t, lt.HomeCollectionCharge(decimal.NewFromInt(499)).Equal(decimal.NewFromInt(99)))
	assert.True(t, lt.HomeCollectionCharge(decimal.NewFromInt(500)).IsZero())

	lt.HomeCollection.FreeAbove = decimal.Zero
	assert.True(t, lt.HomeCollectionCharge(decimal.NewFromInt(10000)).Equal(decimal.NewFromInt(99)))
}

func TestLabTestEstimatedReportDate(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	lt := validLabTest()
	lt.ReportValue, lt.ReportUnit = 2, "weeks"
	assert.Equal(t, now.AddDate(0, 0, 14), lt.EstimatedReportDate(now))
}

func TestMedicine(t *testing.T) {
	v := newValidator()
	m := &Medicine{
		Name:         "Paracetamol 500mg",
		Category:     "tablet",
		MRP:          decimal.NewFromInt(40),
		SellingPrice: decimal.NewFromInt(30),
		Stock:        10,
	}
	require.NoError(t, v.ValidateEntity(m))
	require.NoError(t, m.BeforeSave(nil))
	assert.Equal(t, 25, m.DiscountPercent)

	m.Category = "lozenge"
	m.Stock = -1
	assert.ElementsMatch(t, []string{"category", "stock"}, fieldNames(v.ValidateEntity(m)))
}

func TestLabTestQueries(t *testing.T) {
	popular := PopularTestsQuery(0)
	assert.Equal(t, DefaultPopularLimit, popular.Limit)
	assert.True(t, popular.OnlyActive)
	assert.True(t, popular.OnlyPopular)
	assert.Equal(t, []SortKey{{Column: "order_count", Desc: true}, {Column: "rating_average", Desc: true}}, popular.Sort)

	featured := FeaturedTestsQuery(500)
	assert.Equal(t, MaxQueryLimit, featured.Limit)
	assert.True(t, featured.OnlyFeatured)

	search := SearchTestsQuery("  thyroid ", SearchOptions{Category: "thyroid"})
	assert.Equal(t, "thyroid", search.Text)
	assert.Equal(t, DefaultSearchLimit, search.Limit)
	require.NotNil(t, search.MinPrice)
	assert.True(t, search.MinPrice.IsZero())
	assert.Nil(t, search.MaxPrice)
	assert.Equal(t, SortRelevance, search.Sort[0].Column)
}
