package handler

import (
	"context"
	"time"

	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockDoctorUsecase struct{ mock.Mock }

var _ usecase.DoctorUsecase = (*mockDoctorUsecase)(nil)

func (m *mockDoctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.DoctorResponse)
	return resp, args.Error(1)
}

func (m *mockDoctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.DoctorResponse)
	return resp, args.Error(1)
}

func (m *mockDoctorUsecase) ListDoctors(ctx context.Context, filter entity.DoctorFilter, page, limit int) ([]dto.DoctorResponse, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	resp, _ := args.Get(0).([]dto.DoctorResponse)
	return resp, args.Get(1).(int64), args.Error(2)
}

func (m *mockDoctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.DoctorResponse)
	return resp, args.Error(1)
}

func (m *mockDoctorUsecase) DeactivateDoctor(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockLabTestUsecase struct{ mock.Mock }

var _ usecase.LabTestUsecase = (*mockLabTestUsecase)(nil)

func (m *mockLabTestUsecase) CreateLabTest(ctx context.Context, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) UpdateLabTest(ctx context.Context, id uuid.UUID, req *dto.UpdateLabTestRequest) (*dto.LabTestResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) DeactivateLabTest(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLabTestUsecase) GetLabTest(ctx context.Context, id uuid.UUID) (*dto.LabTestResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) GetLabTestByCode(ctx context.Context, code string) (*dto.LabTestResponse, error) {
	args := m.Called(ctx, code)
	resp, _ := args.Get(0).(*dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) ListLabTests(ctx context.Context, filter entity.LabTestFilter, page, limit int) ([]dto.LabTestResponse, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	resp, _ := args.Get(0).([]dto.LabTestResponse)
	return resp, args.Get(1).(int64), args.Error(2)
}

func (m *mockLabTestUsecase) PopularTests(ctx context.Context, limit int) ([]dto.LabTestResponse, error) {
	args := m.Called(ctx, limit)
	resp, _ := args.Get(0).([]dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) FeaturedTests(ctx context.Context, limit int) ([]dto.LabTestResponse, error) {
	args := m.Called(ctx, limit)
	resp, _ := args.Get(0).([]dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) SearchTests(ctx context.Context, text string, opts entity.SearchOptions) ([]dto.LabTestResponse, error) {
	args := m.Called(ctx, text, opts)
	resp, _ := args.Get(0).([]dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) RateLabTest(ctx context.Context, id uuid.UUID, rating int) (*dto.LabTestResponse, error) {
	args := m.Called(ctx, id, rating)
	resp, _ := args.Get(0).(*dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) RecordOrder(ctx context.Context, id uuid.UUID) (*dto.LabTestResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.LabTestResponse)
	return resp, args.Error(1)
}

func (m *mockLabTestUsecase) ReportETA(ctx context.Context, id uuid.UUID) (*dto.ReportETAResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.ReportETAResponse)
	return resp, args.Error(1)
}

type mockConsultationUsecase struct{ mock.Mock }

var _ usecase.ConsultationUsecase = (*mockConsultationUsecase)(nil)

func (m *mockConsultationUsecase) BookConsultation(ctx context.Context, req *dto.BookConsultationRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.ConsultationResponse)
	return resp, args.Error(1)
}

func (m *mockConsultationUsecase) GetConsultation(ctx context.Context, id uuid.UUID) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.ConsultationResponse)
	return resp, args.Error(1)
}

func (m *mockConsultationUsecase) ListMyConsultations(ctx context.Context, status entity.ConsultationStatus, page, limit int) ([]dto.ConsultationResponse, int64, error) {
	args := m.Called(ctx, status, page, limit)
	resp, _ := args.Get(0).([]dto.ConsultationResponse)
	return resp, args.Get(1).(int64), args.Error(2)
}

func (m *mockConsultationUsecase) ListDoctorConsultations(ctx context.Context, doctorID uuid.UUID, status entity.ConsultationStatus, page, limit int) ([]dto.ConsultationResponse, int64, error) {
	args := m.Called(ctx, doctorID, status, page, limit)
	resp, _ := args.Get(0).([]dto.ConsultationResponse)
	return resp, args.Get(1).(int64), args.Error(2)
}

func (m *mockConsultationUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateConsultationStatusRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.ConsultationResponse)
	return resp, args.Error(1)
}

func (m *mockConsultationUsecase) CancelConsultation(ctx context.Context, id uuid.UUID, req *dto.CancelConsultationRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.ConsultationResponse)
	return resp, args.Error(1)
}

func (m *mockConsultationUsecase) SavePrescription(ctx context.Context, id uuid.UUID, req *dto.PrescriptionRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.ConsultationResponse)
	return resp, args.Error(1)
}

func (m *mockConsultationUsecase) RateConsultation(ctx context.Context, id uuid.UUID, req *dto.RateConsultationRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.ConsultationResponse)
	return resp, args.Error(1)
}

func (m *mockConsultationUsecase) UpdatePayment(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.ConsultationResponse)
	return resp, args.Error(1)
}

func (m *mockConsultationUsecase) SweepNoShows(ctx context.Context, grace time.Duration) (int, error) {
	args := m.Called(ctx, grace)
	return args.Int(0), args.Error(1)
}

type mockAuditLogUsecase struct{ mock.Mock }

var _ usecase.AuditLogUsecase = (*mockAuditLogUsecase)(nil)

func (m *mockAuditLogUsecase) ListAuditLogs(ctx context.Context, filter entity.AuditLogFilter, page, limit int) ([]dto.AuditLogResponse, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	resp, _ := args.Get(0).([]dto.AuditLogResponse)
	return resp, args.Get(1).(int64), args.Error(2)
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.AuditLogResponse)
	return resp, args.Error(1)
}

type mockMedicineUsecase struct{ mock.Mock }

var _ usecase.MedicineUsecase = (*mockMedicineUsecase)(nil)

func (m *mockMedicineUsecase) CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.MedicineResponse)
	return resp, args.Error(1)
}

func (m *mockMedicineUsecase) GetMedicine(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.MedicineResponse)
	return resp, args.Error(1)
}

func (m *mockMedicineUsecase) ListMedicines(ctx context.Context, filter entity.MedicineFilter, page, limit int) ([]dto.MedicineResponse, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	resp, _ := args.Get(0).([]dto.MedicineResponse)
	return resp, args.Get(1).(int64), args.Error(2)
}

func (m *mockMedicineUsecase) UpdateMedicine(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.MedicineResponse)
	return resp, args.Error(1)
}

func (m *mockMedicineUsecase) DeactivateMedicine(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
