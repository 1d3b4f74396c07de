package handler

import (
	"net/http"

	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/usecase"
	"mediquick-api/pkg/response"
	"mediquick-api/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		response.FromError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := entity.DoctorFilter{
		Specialization:  r.URL.Query().Get("specialization"),
		IncludeInactive: includeInactive(r),
	}

	doctors, total, err := h.doctorUsecase.ListDoctors(r.Context(), filter, page, limit)
	if err != nil {
		response.FromError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", response.NewPage(doctors, total, page, limit))
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.UpdateDoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.UpdateDoctor(r.Context(), doctorID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) DeactivateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	if err := h.doctorUsecase.DeactivateDoctor(r.Context(), doctorID); err != nil {
		response.FromError(w, err, "Failed to deactivate doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deactivated successfully", nil)
}
