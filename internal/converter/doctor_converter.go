package converter

import (
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                 doctor.ID,
		Name:               doctor.Name,
		Email:              doctor.Email,
		Phone:              doctor.Phone,
		Specialization:     doctor.Specialization,
		Qualifications:     nonNil(doctor.Qualifications),
		ExperienceYears:    doctor.ExperienceYears,
		ConsultationFee:    doctor.ConsultationFee,
		Languages:          nonNil(doctor.Languages),
		Bio:                doctor.Bio,
		Availability:       doctor.Availability,
		Rating:             doctor.Rating,
		RatingCount:        doctor.RatingCount,
		TotalConsultations: doctor.TotalConsultations,
		IsActive:           doctor.IsActive,
		CreatedAt:          doctor.CreatedAt,
		UpdatedAt:          doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
