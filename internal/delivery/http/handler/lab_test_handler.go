package handler

import (
	"net/http"
	"strings"

	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/usecase"
	"mediquick-api/pkg/response"
	"mediquick-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type LabTestHandler struct {
	labTestUsecase usecase.LabTestUsecase
	validator      *validator.CustomValidator
}

func NewLabTestHandler(labTestUsecase usecase.LabTestUsecase, validator *validator.CustomValidator) *LabTestHandler {
	return &LabTestHandler{
		labTestUsecase: labTestUsecase,
		validator:      validator,
	}
}

func (h *LabTestHandler) CreateLabTest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLabTestRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	test, err := h.labTestUsecase.CreateLabTest(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create lab test")
		return
	}

	response.Success(w, http.StatusCreated, "Lab test created successfully", test)
}

func (h *LabTestHandler) UpdateLabTest(w http.ResponseWriter, r *http.Request) {
	testID, ok := pathID(w, r, "id", "lab test")
	if !ok {
		return
	}

	var req dto.UpdateLabTestRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	test, err := h.labTestUsecase.UpdateLabTest(r.Context(), testID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update lab test")
		return
	}

	response.Success(w, http.StatusOK, "Lab test updated successfully", test)
}

func (h *LabTestHandler) DeactivateLabTest(w http.ResponseWriter, r *http.Request) {
	testID, ok := pathID(w, r, "id", "lab test")
	if !ok {
		return
	}

	if err := h.labTestUsecase.DeactivateLabTest(r.Context(), testID); err != nil {
		response.FromError(w, err, "Failed to deactivate lab test")
		return
	}

	response.Success(w, http.StatusOK, "Lab test deactivated successfully", nil)
}

func (h *LabTestHandler) GetLabTest(w http.ResponseWriter, r *http.Request) {
	testID, ok := pathID(w, r, "id", "lab test")
	if !ok {
		return
	}

	test, err := h.labTestUsecase.GetLabTest(r.Context(), testID)
	if err != nil {
		response.FromError(w, err, "Failed to get lab test")
		return
	}

	response.Success(w, http.StatusOK, "Lab test retrieved successfully", test)
}

func (h *LabTestHandler) GetLabTestByCode(w http.ResponseWriter, r *http.Request) {
	test, err := h.labTestUsecase.GetLabTestByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		response.FromError(w, err, "Failed to get lab test")
		return
	}

	response.Success(w, http.StatusOK, "Lab test retrieved successfully", test)
}

func (h *LabTestHandler) GetAllLabTests(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := entity.LabTestFilter{
		Category:        r.URL.Query().Get("category"),
		IncludeInactive: includeInactive(r),
	}

	tests, total, err := h.labTestUsecase.ListLabTests(r.Context(), filter, page, limit)
	if err != nil {
		response.FromError(w, err, "Failed to get lab tests")
		return
	}

	response.Success(w, http.StatusOK, "Lab tests retrieved successfully", response.NewPage(tests, total, page, limit))
}

func (h *LabTestHandler) PopularTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.labTestUsecase.PopularTests(r.Context(), queryLimit(r))
	if err != nil {
		response.FromError(w, err, "Failed to get popular lab tests")
		return
	}

	response.Success(w, http.StatusOK, "Popular lab tests retrieved successfully", tests)
}

func (h *LabTestHandler) FeaturedTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.labTestUsecase.FeaturedTests(r.Context(), queryLimit(r))
	if err != nil {
		response.FromError(w, err, "Failed to get featured lab tests")
		return
	}

	response.Success(w, http.StatusOK, "Featured lab tests retrieved successfully", tests)
}

func (h *LabTestHandler) SearchTests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := strings.TrimSpace(q.Get("q"))
	if text == "" {
		response.Error(w, http.StatusBadRequest, "Search query is required", nil)
		return
	}
	opts := entity.SearchOptions{
		Category: q.Get("category"),
		Limit:    queryLimit(r),
	}

	var err error
	if opts.MinPrice, err = priceParam(q.Get("minPrice")); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid minPrice", nil)
		return
	}
	if opts.MaxPrice, err = priceParam(q.Get("maxPrice")); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid maxPrice", nil)
		return
	}

	tests, err := h.labTestUsecase.SearchTests(r.Context(), text, opts)
	if err != nil {
		response.FromError(w, err, "Failed to search lab tests")
		return
	}

	response.Success(w, http.StatusOK, "Lab tests retrieved successfully", tests)
}

func priceParam(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *LabTestHandler) RateLabTest(w http.ResponseWriter, r *http.Request) {
	testID, ok := pathID(w, r, "id", "lab test")
	if !ok {
		return
	}

	var req dto.RateRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	test, err := h.labTestUsecase.RateLabTest(r.Context(), testID, req.Rating)
	if err != nil {
		response.FromError(w, err, "Failed to rate lab test")
		return
	}

	response.Success(w, http.StatusOK, "Lab test rated successfully", test)
}

func (h *LabTestHandler) RecordOrder(w http.ResponseWriter, r *http.Request) {
	testID, ok := pathID(w, r, "id", "lab test")
	if !ok {
		return
	}

	test, err := h.labTestUsecase.RecordOrder(r.Context(), testID)
	if err != nil {
		response.FromError(w, err, "Failed to record lab test order")
		return
	}

	response.Success(w, http.StatusCreated, "Lab test order recorded successfully", test)
}

func (h *LabTestHandler) ReportETA(w http.ResponseWriter, r *http.Request) {
	testID, ok := pathID(w, r, "id", "lab test")
	if !ok {
		return
	}

	eta, err := h.labTestUsecase.ReportETA(r.Context(), testID)
	if err != nil {
		response.FromError(w, err, "Failed to estimate report date")
		return
	}

	response.Success(w, http.StatusOK, "Report date estimated successfully", eta)
}
