package testutil

import (
	"sort"
	"strings"
	"sync"
	"time"

	"mediquick-api/internal/domain/calc"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UniqueViolation mimics the error postgres returns for a duplicate key.
func UniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// DoctorRepo is an in-memory repository.DoctorRepository.
type DoctorRepo struct {
	mu         sync.Mutex
	Doctors    map[uuid.UUID]*entity.Doctor
	Err        error
	BatchCalls int
}

var _ repository.DoctorRepository = (*DoctorRepo)(nil)

func NewDoctorRepo() *DoctorRepo {
	return &DoctorRepo{Doctors: map[uuid.UUID]*entity.Doctor{}}
}

func (r *DoctorRepo) insert(d *entity.Doctor) error {
	for _, existing := range r.Doctors {
		if strings.EqualFold(existing.Email, d.Email) && existing.ID != d.ID {
			return UniqueViolation("idx_doctors_email")
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	cp := *d
	r.Doctors[d.ID] = &cp
	return nil
}

func (r *DoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	return r.insert(doctor)
}

func (r *DoctorRepo) CreateBatch(db *gorm.DB, doctors []entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.BatchCalls++
	for i := range doctors {
		if err := r.insert(&doctors[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *DoctorRepo) Count(db *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.Doctors)), nil
}

func (r *DoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	d, ok := r.Doctors[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *DoctorRepo) FindAll(db *gorm.DB, filter entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var out []entity.Doctor
	for _, d := range r.Doctors {
		if !filter.IncludeInactive && !d.IsActive {
			continue
		}
		if filter.Specialization != "" && d.Specialization != filter.Specialization {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), int64(len(out)), nil
}

func (r *DoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	existing, ok := r.Doctors[doctor.ID]
	if !ok {
		return nil
	}
	cp := *doctor
	cp.Rating, cp.RatingCount, cp.TotalConsultations = existing.Rating, existing.RatingCount, existing.TotalConsultations
	delete(r.Doctors, doctor.ID)
	if err := r.insert(&cp); err != nil {
		r.Doctors[existing.ID] = existing
		return err
	}
	return nil
}

func (r *DoctorRepo) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	d, ok := r.Doctors[id]
	if !ok {
		return 0, nil
	}
	d.IsActive = false
	return 1, nil
}

func (r *DoctorRepo) IncrementConsultations(db *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.Doctors[id]; ok {
		d.TotalConsultations++
	}
	return r.Err
}

func (r *DoctorRepo) ApplyRating(db *gorm.DB, id uuid.UUID, rating int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	d, ok := r.Doctors[id]
	if !ok {
		return 0, nil
	}
	d.Rating, d.RatingCount = calc.IncrementalMean(d.Rating, d.RatingCount, float64(rating))
	return 1, nil
}

// ConsultationRepo is an in-memory repository.ConsultationRepository.
type ConsultationRepo struct {
	mu            sync.Mutex
	Consultations map[uuid.UUID]*entity.Consultation
	Doctors       *DoctorRepo
	Err           error
}

var _ repository.ConsultationRepository = (*ConsultationRepo)(nil)

func NewConsultationRepo(doctors *DoctorRepo) *ConsultationRepo {
	return &ConsultationRepo{Consultations: map[uuid.UUID]*entity.Consultation{}, Doctors: doctors}
}

func (r *ConsultationRepo) withDoctor(c entity.Consultation) *entity.Consultation {
	if r.Doctors != nil {
		c.Doctor, _ = r.Doctors.FindByID(nil, c.DoctorID)
	}
	return &c
}

func (r *ConsultationRepo) Create(db *gorm.DB, consultation *entity.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if consultation.ID == uuid.Nil {
		consultation.ID = uuid.New()
	}
	cp := *consultation
	cp.Doctor = nil
	r.Consultations[cp.ID] = &cp
	return nil
}

func (r *ConsultationRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.Consultations[id]
	if !ok {
		return nil, nil
	}
	return r.withDoctor(*c), nil
}

func (r *ConsultationRepo) FindAll(db *gorm.DB, filter entity.ConsultationFilter, limit, offset int) ([]entity.Consultation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var out []entity.Consultation
	for _, c := range r.Consultations {
		if filter.PatientID != nil && c.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && c.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *r.withDoctor(*c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentAt().After(out[j].AppointmentAt()) })
	return page(out, limit, offset), int64(len(out)), nil
}

func (r *ConsultationRepo) TransitionStatus(db *gorm.DB, id uuid.UUID, from, to entity.ConsultationStatus, fields map[string]interface{}) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	c, ok := r.Consultations[id]
	if !ok || c.Status != from {
		return 0, nil
	}
	c.Status = to
	if v, ok := fields["started_at"].(time.Time); ok {
		c.StartedAt = &v
	}
	if v, ok := fields["ended_at"].(time.Time); ok {
		c.EndedAt = &v
	}
	if v, ok := fields["cancellation_reason"].(string); ok {
		c.CancellationReason = v
	}
	return 1, nil
}

func (r *ConsultationRepo) UpdatePrescription(db *gorm.DB, id uuid.UUID, prescription *entity.Prescription) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	c, ok := r.Consultations[id]
	if !ok {
		return 0, nil
	}
	c.Prescription = prescription
	return 1, nil
}

func (r *ConsultationRepo) UpdatePayment(db *gorm.DB, id uuid.UUID, from, to entity.PaymentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	c, ok := r.Consultations[id]
	if !ok || c.PaymentStatus != from {
		return 0, nil
	}
	c.PaymentStatus = to
	return 1, nil
}

func (r *ConsultationRepo) SetRating(db *gorm.DB, id uuid.UUID, rating int, feedback string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	c, ok := r.Consultations[id]
	if !ok || c.Status != entity.ConsultationCompleted || c.Rating != nil {
		return 0, nil
	}
	c.Rating = &rating
	c.Feedback = feedback
	return 1, nil
}

func (r *ConsultationRepo) FindOverdueScheduled(db *gorm.DB, before time.Time, limit int) ([]entity.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Consultation
	for _, c := range r.Consultations {
		if c.Status == entity.ConsultationScheduled && c.AppointmentAt().Before(before) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentAt().Before(out[j].AppointmentAt()) })
	return page(out, limit, 0), nil
}

// LabTestRepo is an in-memory repository.LabTestRepository.
type LabTestRepo struct {
	mu         sync.Mutex
	Tests      map[uuid.UUID]*entity.LabTest
	Err        error
	BatchCalls int
	Queries    []entity.LabTestQuery
}

var _ repository.LabTestRepository = (*LabTestRepo)(nil)

func NewLabTestRepo() *LabTestRepo {
	return &LabTestRepo{Tests: map[uuid.UUID]*entity.LabTest{}}
}

func (r *LabTestRepo) insert(t *entity.LabTest) error {
	for _, existing := range r.Tests {
		if existing.Code == t.Code && existing.ID != t.ID {
			return UniqueViolation("idx_lab_tests_code")
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_ = t.BeforeSave(nil)
	cp := *t
	r.Tests[t.ID] = &cp
	return nil
}

func (r *LabTestRepo) Create(db *gorm.DB, test *entity.LabTest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	return r.insert(test)
}

func (r *LabTestRepo) CreateBatch(db *gorm.DB, tests []entity.LabTest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.BatchCalls++
	for i := range tests {
		if err := r.insert(&tests[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *LabTestRepo) Count(db *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.Tests)), nil
}

func (r *LabTestRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabTest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.Tests[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *LabTestRepo) FindByCode(db *gorm.DB, code string) (*entity.LabTest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, t := range r.Tests {
		if t.Code == strings.ToUpper(code) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *LabTestRepo) FindAll(db *gorm.DB, filter entity.LabTestFilter, limit, offset int) ([]entity.LabTest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var out []entity.LabTest
	for _, t := range r.Tests {
		if !filter.IncludeInactive && !t.IsActive {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), int64(len(out)), nil
}

func (r *LabTestRepo) Update(db *gorm.DB, test *entity.LabTest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	existing, ok := r.Tests[test.ID]
	if !ok {
		return nil
	}
	cp := *test
	cp.RatingAverage, cp.RatingCount = existing.RatingAverage, existing.RatingCount
	cp.OrderCount, cp.ViewCount = existing.OrderCount, existing.ViewCount
	delete(r.Tests, test.ID)
	if err := r.insert(&cp); err != nil {
		r.Tests[existing.ID] = existing
		return err
	}
	*test = cp
	return nil
}

func (r *LabTestRepo) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	t, ok := r.Tests[id]
	if !ok {
		return 0, nil
	}
	t.IsActive = false
	return 1, nil
}

// Query evaluates q in memory. Relevance is approximated by the number of
// query words found in the search text.
func (r *LabTestRepo) Query(db *gorm.DB, q entity.LabTestQuery) ([]entity.LabTest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.Queries = append(r.Queries, q)

	words := strings.Fields(strings.ToLower(q.Text))
	relevance := func(t entity.LabTest) int {
		doc := strings.ToLower(t.SearchText)
		n := 0
		for _, w := range words {
			if strings.Contains(doc, w) {
				n++
			}
		}
		return n
	}

	var out []entity.LabTest
	for _, t := range r.Tests {
		switch {
		case q.OnlyActive && !t.IsActive,
			q.OnlyPopular && !t.IsPopular,
			q.OnlyFeatured && !t.IsFeatured,
			q.Category != "" && t.Category != q.Category,
			q.MinPrice != nil && t.SellingPrice.LessThan(*q.MinPrice),
			q.MaxPrice != nil && t.SellingPrice.GreaterThan(*q.MaxPrice),
			len(words) > 0 && relevance(*t) == 0:
			continue
		}
		out = append(out, *t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range q.Sort {
			var a, b float64
			switch key.Column {
			case entity.SortRelevance:
				a, b = float64(relevance(out[i])), float64(relevance(out[j]))
			case "order_count":
				a, b = float64(out[i].OrderCount), float64(out[j].OrderCount)
			case "rating_average":
				a, b = out[i].RatingAverage, out[j].RatingAverage
			case "view_count":
				a, b = float64(out[i].ViewCount), float64(out[j].ViewCount)
			default:
				continue
			}
			if a == b {
				continue
			}
			if key.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})

	return page(out, q.Limit, 0), nil
}

func (r *LabTestRepo) IncrementOrderCount(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	t, ok := r.Tests[id]
	if !ok || !t.IsActive {
		return 0, nil
	}
	t.OrderCount++
	return 1, nil
}

func (r *LabTestRepo) ApplyRating(db *gorm.DB, id uuid.UUID, rating int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	t, ok := r.Tests[id]
	if !ok || !t.IsActive {
		return 0, nil
	}
	t.RatingAverage, t.RatingCount = calc.IncrementalMean(t.RatingAverage, t.RatingCount, float64(rating))
	return 1, nil
}

func (r *LabTestRepo) AddViewCounts(db *gorm.DB, counts map[uuid.UUID]int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for id, n := range counts {
		if t, ok := r.Tests[id]; ok {
			t.ViewCount += n
		}
	}
	return nil
}

// MedicineRepo is an in-memory repository.MedicineRepository.
type MedicineRepo struct {
	mu         sync.Mutex
	Medicines  map[uuid.UUID]*entity.Medicine
	Err        error
	BatchCalls int
}

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

func NewMedicineRepo() *MedicineRepo {
	return &MedicineRepo{Medicines: map[uuid.UUID]*entity.Medicine{}}
}

func (r *MedicineRepo) insert(m *entity.Medicine) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	_ = m.BeforeSave(nil)
	cp := *m
	r.Medicines[m.ID] = &cp
}

func (r *MedicineRepo) Create(db *gorm.DB, medicine *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.insert(medicine)
	return nil
}

func (r *MedicineRepo) CreateBatch(db *gorm.DB, medicines []entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.BatchCalls++
	for i := range medicines {
		r.insert(&medicines[i])
	}
	return nil
}

func (r *MedicineRepo) Count(db *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.Medicines)), nil
}

func (r *MedicineRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	m, ok := r.Medicines[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *MedicineRepo) FindAll(db *gorm.DB, filter entity.MedicineFilter, limit, offset int) ([]entity.Medicine, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var out []entity.Medicine
	for _, m := range r.Medicines {
		switch {
		case !filter.IncludeInactive && !m.IsActive,
			filter.Category != "" && m.Category != filter.Category,
			filter.Name != "" && !strings.Contains(strings.ToLower(m.Name+" "+m.GenericName), strings.ToLower(filter.Name)),
			filter.RequiresPrescription != nil && m.RequiresPrescription != *filter.RequiresPrescription:
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), int64(len(out)), nil
}

func (r *MedicineRepo) Update(db *gorm.DB, medicine *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.Medicines[medicine.ID]; ok {
		r.insert(medicine)
	}
	return nil
}

func (r *MedicineRepo) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	m, ok := r.Medicines[id]
	if !ok {
		return 0, nil
	}
	m.IsActive = false
	return 1, nil
}

// AuditLogRepo is an in-memory repository.AuditLogRepository.
type AuditLogRepo struct {
	mu   sync.Mutex
	Logs []entity.AuditLog
	Err  error
}

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

func NewAuditLogRepo() *AuditLogRepo {
	return &AuditLogRepo{}
}

func (r *AuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	log.ID = int64(len(r.Logs) + 1)
	r.Logs = append(r.Logs, *log)
	return nil
}

func (r *AuditLogRepo) FindAll(db *gorm.DB, filter entity.AuditLogFilter, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	var out []entity.AuditLog
	for i := len(r.Logs) - 1; i >= 0; i-- {
		l := r.Logs[i]
		switch {
		case filter.ActionPrefix != "" && !strings.HasPrefix(l.Action, filter.ActionPrefix):
			continue
		case filter.UserID != nil && (l.UserID == nil || *l.UserID != *filter.UserID):
			continue
		case filter.Entity != "" && l.Metadata["entity"] != filter.Entity:
			continue
		case filter.EntityID != "" && l.Metadata["entity_id"] != filter.EntityID:
			continue
		}
		out = append(out, l)
	}
	return page(out, limit, offset), int64(len(out)), nil
}

func (r *AuditLogRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Logs {
		if r.Logs[i].ID == id {
			cp := r.Logs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// Actions returns the recorded audit actions in order.
func (r *AuditLogRepo) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Logs))
	for i, l := range r.Logs {
		out[i] = l.Action
	}
	return out
}
