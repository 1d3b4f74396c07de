package converter

import (
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
)

func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	return &dto.MedicineResponse{
		ID:                   medicine.ID,
		Name:                 medicine.Name,
		GenericName:          medicine.GenericName,
		Manufacturer:         medicine.Manufacturer,
		Category:             medicine.Category,
		Description:          medicine.Description,
		Dosage:               medicine.Dosage,
		PackSize:             medicine.PackSize,
		MRP:                  medicine.MRP,
		SellingPrice:         medicine.SellingPrice,
		DiscountPercent:      medicine.DiscountPercent,
		DiscountAmount:       medicine.DiscountAmount(),
		Stock:                medicine.Stock,
		RequiresPrescription: medicine.RequiresPrescription,
		IsActive:             medicine.IsActive,
		CreatedAt:            medicine.CreatedAt,
		UpdatedAt:            medicine.UpdatedAt,
	}
}

func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i := range medicines {
		responses[i] = *MedicineToResponse(&medicines[i])
	}
	return responses
}
