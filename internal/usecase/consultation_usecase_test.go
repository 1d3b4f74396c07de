package usecase

import (
	"context"
	"testing"
	"time"

	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookRequest(doctorID uuid.UUID, date, at string) *dto.BookConsultationRequest {
	return &dto.BookConsultationRequest{
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: at,
		Type:            "video",
		Symptoms:        "persistent cough",
	}
}

func fieldsOf(err error) []string {
	var names []string
	for _, f := range apperror.FieldsOf(err) {
		names = append(names, f.Field)
	}
	return names
}

func (d *deps) book(t *testing.T, patient uuid.UUID, doctor *entity.Doctor) *dto.ConsultationResponse {
	t.Helper()
	resp, err := d.consultationUsecase().BookConsultation(asPatient(patient), bookRequest(doctor.ID, "2030-01-07", "10:00"))
	require.NoError(t, err)
	return resp
}

func TestBookConsultation(t *testing.T) {
	d := newDeps(t)
	uc := d.consultationUsecase()
	doctor := d.addDoctor(t)
	patient := uuid.New()

	t.Run("success copies fee", func(t *testing.T) {
		resp, err := uc.BookConsultation(asPatient(patient), bookRequest(doctor.ID, "2030-01-07", "10:00"))
		require.NoError(t, err)

		assert.Equal(t, "scheduled", resp.Status)
		assert.Equal(t, "pending", resp.PaymentStatus)
		assert.Equal(t, "2030-01-07", resp.AppointmentDate)
		assert.True(t, resp.Fee.Equal(decimal.NewFromInt(800)))
		require.NotNil(t, resp.Doctor)
		assert.Equal(t, doctor.ID, resp.Doctor.ID)
		assert.Contains(t, d.audit.Actions(), entity.AuditActionConsultationBook)
	})

	t.Run("past and outside availability are both reported", func(t *testing.T) {
		_, err := uc.BookConsultation(asPatient(patient), bookRequest(doctor.ID, "2029-12-31", "18:00"))
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.ElementsMatch(t, []string{"appointment_date", "appointment_time"}, fieldsOf(err))
	})

	t.Run("day without slot", func(t *testing.T) {
		_, err := uc.BookConsultation(asPatient(patient), bookRequest(doctor.ID, "2030-01-08", "10:00"))
		assert.Equal(t, []string{"appointment_time"}, fieldsOf(err))
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := uc.BookConsultation(asPatient(patient), bookRequest(doctor.ID, "07-01-2030", "10:00"))
		assert.Equal(t, []string{"appointment_date"}, fieldsOf(err))
	})

	t.Run("inactive doctor", func(t *testing.T) {
		inactive := d.addDoctor(t, func(doc *entity.Doctor) { doc.IsActive = false })
		_, err := uc.BookConsultation(asPatient(patient), bookRequest(inactive.ID, "2030-01-07", "10:00"))
		assert.ErrorIs(t, err, ErrDoctorInactive)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		_, err := uc.BookConsultation(asPatient(patient), bookRequest(uuid.New(), "2030-01-07", "10:00"))
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("patients only", func(t *testing.T) {
		_, err := uc.BookConsultation(asDoctor(doctor.ID), bookRequest(doctor.ID, "2030-01-07", "10:00"))
		assert.ErrorIs(t, err, ErrPatientOnly)

		_, err = uc.BookConsultation(context.Background(), bookRequest(doctor.ID, "2030-01-07", "10:00"))
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestConsultationLifecycle(t *testing.T) {
	d := newDeps(t)
	uc := d.consultationUsecase()
	doctor := d.addDoctor(t)
	patient := uuid.New()
	booked := d.book(t, patient, doctor)

	t.Run("patient cannot drive status", func(t *testing.T) {
		_, err := uc.UpdateStatus(asPatient(patient), booked.ID, &dto.UpdateConsultationStatusRequest{Status: "in-progress"})
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("another doctor is not a participant", func(t *testing.T) {
		_, err := uc.GetConsultation(asDoctor(uuid.New()), booked.ID)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("prescription needs an open consultation", func(t *testing.T) {
		_, err := uc.SavePrescription(asDoctor(doctor.ID), booked.ID, prescriptionRequest())
		assert.ErrorIs(t, err, ErrPrescriptionNotOpen)
	})

	started, err := uc.UpdateStatus(asDoctor(doctor.ID), booked.ID, &dto.UpdateConsultationStatusRequest{Status: "in-progress"})
	require.NoError(t, err)
	assert.Equal(t, "in-progress", started.Status)
	require.NotNil(t, started.StartedAt)
	assert.Equal(t, fixedNow, *started.StartedAt)

	withRx, err := uc.SavePrescription(asDoctor(doctor.ID), booked.ID, prescriptionRequest())
	require.NoError(t, err)
	require.NotNil(t, withRx.Prescription)
	require.NotNil(t, withRx.Prescription.FollowUpDate)
	assert.Equal(t, "Amoxicillin", withRx.Prescription.Medications[0].Name)

	_, err = uc.RateConsultation(asPatient(patient), booked.ID, &dto.RateConsultationRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrRatingNotAllowed)

	completed, err := uc.UpdateStatus(asDoctor(doctor.ID), booked.ID, &dto.UpdateConsultationStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, completed.EndedAt)
	require.NotNil(t, completed.ActualDurationMinutes)
	assert.Equal(t, 0, *completed.ActualDurationMinutes)
	assert.Equal(t, 1, d.doctors.Doctors[doctor.ID].TotalConsultations)

	t.Run("terminal status rejects transitions", func(t *testing.T) {
		_, err := uc.CancelConsultation(asPatient(patient), booked.ID, &dto.CancelConsultationRequest{Reason: "late"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("rating is recorded once", func(t *testing.T) {
		_, err := uc.RateConsultation(asPatient(uuid.New()), booked.ID, &dto.RateConsultationRequest{Rating: 3})
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

		rated, err := uc.RateConsultation(asPatient(patient), booked.ID, &dto.RateConsultationRequest{Rating: 4, Feedback: "helpful"})
		require.NoError(t, err)
		require.NotNil(t, rated.Rating)
		assert.Equal(t, 4, *rated.Rating)

		_, err = uc.RateConsultation(asPatient(patient), booked.ID, &dto.RateConsultationRequest{Rating: 5})
		assert.ErrorIs(t, err, ErrRatingNotAllowed)
	})

	t.Run("doctor rating averages across consultations", func(t *testing.T) {
		second := d.book(t, patient, doctor)
		for _, status := range []string{"in-progress", "completed"} {
			_, err := uc.UpdateStatus(asAdmin(), second.ID, &dto.UpdateConsultationStatusRequest{Status: status})
			require.NoError(t, err)
		}
		_, err := uc.RateConsultation(asPatient(patient), second.ID, &dto.RateConsultationRequest{Rating: 5})
		require.NoError(t, err)

		got := d.doctors.Doctors[doctor.ID]
		assert.InDelta(t, 4.5, got.Rating, 1e-9)
		assert.Equal(t, 2, got.RatingCount)
		assert.Equal(t, 2, got.TotalConsultations)
	})

	statusChanges := 0
	for _, log := range d.audit.Logs {
		if log.Action == entity.AuditActionConsultationStatus {
			statusChanges++
		}
	}
	assert.Equal(t, 4, statusChanges)
}

func prescriptionRequest() *dto.PrescriptionRequest {
	return &dto.PrescriptionRequest{
		Medications: []entity.Medication{{
			Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "5 days",
		}},
		Diagnosis:    "Bronchitis",
		FollowUpDate: "2030-01-14",
	}
}

func TestCancelConsultation(t *testing.T) {
	d := newDeps(t)
	uc := d.consultationUsecase()
	doctor := d.addDoctor(t)
	patient := uuid.New()
	booked := d.book(t, patient, doctor)

	_, err := uc.CancelConsultation(asPatient(uuid.New()), booked.ID, &dto.CancelConsultationRequest{})
	assert.ErrorIs(t, err, ErrNotParticipant)

	resp, err := uc.CancelConsultation(asPatient(patient), booked.ID, &dto.CancelConsultationRequest{Reason: "feeling better"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "feeling better", resp.CancellationReason)

	_, err = uc.GetConsultation(asAdmin(), uuid.New())
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestUpdatePayment(t *testing.T) {
	d := newDeps(t)
	uc := d.consultationUsecase()
	booked := d.book(t, uuid.New(), d.addDoctor(t))

	_, err := uc.UpdatePayment(asAdmin(), booked.ID, &dto.UpdatePaymentRequest{PaymentStatus: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidPayment)

	for _, step := range []string{"failed", "paid", "refunded"} {
		resp, err := uc.UpdatePayment(asAdmin(), booked.ID, &dto.UpdatePaymentRequest{PaymentStatus: step})
		require.NoError(t, err, step)
		assert.Equal(t, step, resp.PaymentStatus)
	}

	_, err = uc.UpdatePayment(asAdmin(), booked.ID, &dto.UpdatePaymentRequest{PaymentStatus: "paid"})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestListConsultations(t *testing.T) {
	d := newDeps(t)
	uc := d.consultationUsecase()
	doctor := d.addDoctor(t)
	other := d.addDoctor(t)
	patient := uuid.New()
	d.book(t, patient, doctor)
	d.book(t, patient, other)
	d.book(t, uuid.New(), doctor)

	mine, total, err := uc.ListMyConsultations(asPatient(patient), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)

	_, total, err = uc.ListMyConsultations(asDoctor(doctor.ID), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = uc.ListMyConsultations(asAdmin(), entity.ConsultationScheduled, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, _, err = uc.ListMyConsultations(asAdmin(), "done", 1, 10)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	_, _, err = uc.ListDoctorConsultations(asDoctor(other.ID), doctor.ID, "", 1, 10)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, total, err = uc.ListDoctorConsultations(asDoctor(doctor.ID), doctor.ID, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSweepNoShows(t *testing.T) {
	d := newDeps(t)
	uc := d.consultationUsecase()
	doctor := d.addDoctor(t)
	patient := uuid.New()

	overdue := d.book(t, patient, doctor)
	upcoming := d.book(t, patient, doctor)

	// move the clock past the first appointment only
	d.consultations.Consultations[upcoming.ID].AppointmentDate = time.Date(2030, 1, 14, 0, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return time.Date(2030, 1, 7, 11, 0, 0, 0, time.UTC) }

	marked, err := uc.SweepNoShows(context.Background(), 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)
	assert.Equal(t, entity.ConsultationNoShow, d.consultations.Consultations[overdue.ID].Status)
	assert.Equal(t, entity.ConsultationScheduled, d.consultations.Consultations[upcoming.ID].Status)

	last := d.audit.Logs[len(d.audit.Logs)-1]
	assert.Equal(t, entity.AuditActionConsultationStatus, last.Action)
	assert.Nil(t, last.UserID)

	marked, err = uc.SweepNoShows(context.Background(), 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}
