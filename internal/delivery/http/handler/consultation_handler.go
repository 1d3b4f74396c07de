package handler

import (
	"net/http"

	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/usecase"
	"mediquick-api/pkg/response"
	"mediquick-api/pkg/validator"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) BookConsultation(w http.ResponseWriter, r *http.Request) {
	var req dto.BookConsultationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	consultation, err := h.consultationUsecase.BookConsultation(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to book consultation")
		return
	}

	response.Success(w, http.StatusCreated, "Consultation booked successfully", consultation)
}

func (h *ConsultationHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(w, r, "id", "consultation")
	if !ok {
		return
	}

	consultation, err := h.consultationUsecase.GetConsultation(r.Context(), consultationID)
	if err != nil {
		response.FromError(w, err, "Failed to get consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

func (h *ConsultationHandler) GetMyConsultations(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	status := entity.ConsultationStatus(r.URL.Query().Get("status"))

	consultations, total, err := h.consultationUsecase.ListMyConsultations(r.Context(), status, page, limit)
	if err != nil {
		response.FromError(w, err, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", response.NewPage(consultations, total, page, limit))
}

func (h *ConsultationHandler) GetDoctorConsultations(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}
	page, limit := pagination(r)
	status := entity.ConsultationStatus(r.URL.Query().Get("status"))

	consultations, total, err := h.consultationUsecase.ListDoctorConsultations(r.Context(), doctorID, status, page, limit)
	if err != nil {
		response.FromError(w, err, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", response.NewPage(consultations, total, page, limit))
}

func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(w, r, "id", "consultation")
	if !ok {
		return
	}

	var req dto.UpdateConsultationStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	consultation, err := h.consultationUsecase.UpdateStatus(r.Context(), consultationID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update consultation status")
		return
	}

	response.Success(w, http.StatusOK, "Consultation status updated successfully", consultation)
}

func (h *ConsultationHandler) CancelConsultation(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(w, r, "id", "consultation")
	if !ok {
		return
	}

	var req dto.CancelConsultationRequest
	if r.ContentLength != 0 && !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	consultation, err := h.consultationUsecase.CancelConsultation(r.Context(), consultationID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to cancel consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation cancelled successfully", consultation)
}

func (h *ConsultationHandler) SavePrescription(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(w, r, "id", "consultation")
	if !ok {
		return
	}

	var req dto.PrescriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	consultation, err := h.consultationUsecase.SavePrescription(r.Context(), consultationID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to save prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription saved successfully", consultation)
}

func (h *ConsultationHandler) RateConsultation(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(w, r, "id", "consultation")
	if !ok {
		return
	}

	var req dto.RateConsultationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	consultation, err := h.consultationUsecase.RateConsultation(r.Context(), consultationID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to rate consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation rated successfully", consultation)
}

func (h *ConsultationHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	consultationID, ok := pathID(w, r, "id", "consultation")
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	consultation, err := h.consultationUsecase.UpdatePayment(r.Context(), consultationID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update payment status")
		return
	}

	response.Success(w, http.StatusOK, "Payment status updated successfully", consultation)
}
