package converter

import (
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ConsultationToResponse converts a Consultation entity to ConsultationResponse DTO
func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	if c == nil {
		return nil
	}

	resp := &dto.ConsultationResponse{
		ID:                    c.ID,
		PatientID:             c.PatientID,
		DoctorID:              c.DoctorID,
		AppointmentDate:       c.AppointmentDate.Format(dateLayout),
		AppointmentTime:       c.AppointmentTime,
		Type:                  string(c.Type),
		Status:                string(c.Status),
		Symptoms:              c.Symptoms,
		Fee:                   c.Fee,
		PaymentStatus:         string(c.PaymentStatus),
		Prescription:          c.Prescription,
		StartedAt:             c.StartedAt,
		EndedAt:               c.EndedAt,
		ActualDurationMinutes: c.ActualDurationMinutes(),
		CancellationReason:    c.CancellationReason,
		Rating:                c.Rating,
		Feedback:              c.Feedback,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}

	if c.Doctor != nil {
		resp.Doctor = &dto.DoctorSummary{
			ID:             c.Doctor.ID,
			Name:           c.Doctor.Name,
			Specialization: c.Doctor.Specialization,
		}
	}

	return resp
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}
