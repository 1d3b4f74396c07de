package converter

import (
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
)

// LabTestToResponse converts a LabTest entity to LabTestResponse DTO
func LabTestToResponse(test *entity.LabTest) *dto.LabTestResponse {
	if test == nil {
		return nil
	}

	parameters := test.Parameters
	if parameters == nil {
		parameters = []entity.TestParameter{}
	}

	return &dto.LabTestResponse{
		ID:              test.ID,
		Name:            test.Name,
		Code:            test.Code,
		Category:        test.Category,
		Subcategory:     test.Subcategory,
		Description:     test.Description,
		Tags:            nonNil(test.Tags),
		MRP:             test.MRP,
		SellingPrice:    test.SellingPrice,
		DiscountPercent: test.DiscountPercent,
		DiscountAmount:  test.DiscountAmount(),
		SampleTypes:     nonNil(test.SampleTypes),
		FastingHours:    test.FastingHours,
		ReportValue:     test.ReportValue,
		ReportUnit:      test.ReportUnit,
		HomeCollection:  test.HomeCollection,
		Parameters:      parameters,
		AgeMin:          test.AgeMin,
		AgeMax:          test.AgeMax,
		Gender:          test.Gender,
		RatingAverage:   test.RatingAverage,
		RatingCount:     test.RatingCount,
		OrderCount:      test.OrderCount,
		ViewCount:       test.ViewCount,
		IsPopular:       test.IsPopular,
		IsFeatured:      test.IsFeatured,
		IsActive:        test.IsActive,
		CreatedAt:       test.CreatedAt,
		UpdatedAt:       test.UpdatedAt,
	}
}

// LabTestsToResponses converts a slice of LabTest entities to slice of LabTestResponse DTOs
func LabTestsToResponses(tests []entity.LabTest) []dto.LabTestResponse {
	responses := make([]dto.LabTestResponse, len(tests))
	for i := range tests {
		responses[i] = *LabTestToResponse(&tests[i])
	}
	return responses
}
