package handler

import (
	"net/http"
	"strconv"

	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/usecase"
	"mediquick-api/pkg/response"
	"mediquick-api/pkg/validator"
)

type MedicineHandler struct {
	medicineUsecase usecase.MedicineUsecase
	validator       *validator.CustomValidator
}

func NewMedicineHandler(medicineUsecase usecase.MedicineUsecase, validator *validator.CustomValidator) *MedicineHandler {
	return &MedicineHandler{
		medicineUsecase: medicineUsecase,
		validator:       validator,
	}
}

func (h *MedicineHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicineRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.CreateMedicine(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create medicine")
		return
	}

	response.Success(w, http.StatusCreated, "Medicine created successfully", medicine)
}

func (h *MedicineHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	medicineID, ok := pathID(w, r, "id", "medicine")
	if !ok {
		return
	}

	medicine, err := h.medicineUsecase.GetMedicine(r.Context(), medicineID)
	if err != nil {
		response.FromError(w, err, "Failed to get medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine retrieved successfully", medicine)
}

func (h *MedicineHandler) GetAllMedicines(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	q := r.URL.Query()
	filter := entity.MedicineFilter{
		Category:        q.Get("category"),
		Name:            q.Get("q"),
		IncludeInactive: includeInactive(r),
	}
	if raw := q.Get("requires_prescription"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid requires_prescription", nil)
			return
		}
		filter.RequiresPrescription = &v
	}

	medicines, total, err := h.medicineUsecase.ListMedicines(r.Context(), filter, page, limit)
	if err != nil {
		response.FromError(w, err, "Failed to get medicines")
		return
	}

	response.Success(w, http.StatusOK, "Medicines retrieved successfully", response.NewPage(medicines, total, page, limit))
}

func (h *MedicineHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	medicineID, ok := pathID(w, r, "id", "medicine")
	if !ok {
		return
	}

	var req dto.UpdateMedicineRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.UpdateMedicine(r.Context(), medicineID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine updated successfully", medicine)
}

func (h *MedicineHandler) DeactivateMedicine(w http.ResponseWriter, r *http.Request) {
	medicineID, ok := pathID(w, r, "id", "medicine")
	if !ok {
		return
	}

	if err := h.medicineUsecase.DeactivateMedicine(r.Context(), medicineID); err != nil {
		response.FromError(w, err, "Failed to deactivate medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine deactivated successfully", nil)
}
