package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/yoockh/huffaz-portal/internal/events"
	"github.com/yoockh/huffaz-portal/internal/models"
	pgrepo "github.com/yoockh/huffaz-portal/internal/repositories/postgres"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"gorm.io/datatypes"
)

var errNotImplemented = errors.New("not implemented")

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepo struct {
	findByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	findByIDFunc          func(ctx context.Context, id string) (*models.User, error)
	createWithProfileFunc func(ctx context.Context, u *models.User, p *models.Profile) error
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errNotImplemented
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserRepo) CreateWithProfile(ctx context.Context, u *models.User, p *models.Profile) error {
	if m.createWithProfileFunc != nil {
		return m.createWithProfileFunc(ctx, u, p)
	}
	return errNotImplemented
}

// =============================================================================
// Mock ProfileRepository
// =============================================================================

type mockProfileRepo struct {
	getByUserIDFunc func(ctx context.Context, userID string) (*models.Profile, error)
	updateFunc      func(ctx context.Context, userID string, fields map[string]any) (*models.Profile, error)
	setDocumentFunc func(ctx context.Context, userID, kind, url string) (*models.Profile, error)
	setMBTIFunc     func(ctx context.Context, userID, mbtiType string, scores datatypes.JSON) (*models.Profile, error)
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if m.getByUserIDFunc != nil {
		return m.getByUserIDFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

func (m *mockProfileRepo) Update(ctx context.Context, userID string, fields map[string]any) (*models.Profile, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, fields)
	}
	return nil, errNotImplemented
}

func (m *mockProfileRepo) SetDocument(ctx context.Context, userID, kind, url string) (*models.Profile, error) {
	if m.setDocumentFunc != nil {
		return m.setDocumentFunc(ctx, userID, kind, url)
	}
	return nil, errNotImplemented
}

func (m *mockProfileRepo) SetMBTI(ctx context.Context, userID, mbtiType string, scores datatypes.JSON) (*models.Profile, error) {
	if m.setMBTIFunc != nil {
		return m.setMBTIFunc(ctx, userID, mbtiType, scores)
	}
	return nil, errNotImplemented
}

// =============================================================================
// Mock JobRepository
// =============================================================================

type mockJobRepo struct {
	listOpenFunc           func(ctx context.Context, now time.Time, f pgrepo.JobFilter) ([]models.JobPosting, error)
	listAllFunc            func(ctx context.Context) ([]models.JobPosting, error)
	findOpenByIDFunc       func(ctx context.Context, id string, now time.Time) (*models.JobPosting, error)
	findByIDFunc           func(ctx context.Context, id string) (*models.JobPosting, error)
	createFunc             func(ctx context.Context, j *models.JobPosting) error
	updateFunc             func(ctx context.Context, id string, fields map[string]any) (*models.JobPosting, error)
	listMissingDetailsFunc func(ctx context.Context) ([]models.JobPosting, error)
}

func (m *mockJobRepo) ListOpen(ctx context.Context, now time.Time, f pgrepo.JobFilter) ([]models.JobPosting, error) {
	if m.listOpenFunc != nil {
		return m.listOpenFunc(ctx, now, f)
	}
	return nil, errNotImplemented
}

func (m *mockJobRepo) ListAll(ctx context.Context) ([]models.JobPosting, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockJobRepo) FindOpenByID(ctx context.Context, id string, now time.Time) (*models.JobPosting, error) {
	if m.findOpenByIDFunc != nil {
		return m.findOpenByIDFunc(ctx, id, now)
	}
	return nil, errNotImplemented
}

func (m *mockJobRepo) FindByID(ctx context.Context, id string) (*models.JobPosting, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockJobRepo) Create(ctx context.Context, j *models.JobPosting) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, j)
	}
	return errNotImplemented
}

func (m *mockJobRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.JobPosting, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, fields)
	}
	return nil, errNotImplemented
}

func (m *mockJobRepo) ListMissingDetails(ctx context.Context) ([]models.JobPosting, error) {
	if m.listMissingDetailsFunc != nil {
		return m.listMissingDetailsFunc(ctx)
	}
	return nil, errNotImplemented
}

// =============================================================================
// In-memory ApplicationRepository
// =============================================================================

// memApplications mimics the unique (user_id, job_posting_id) index and the
// guarded delete of the SQL store.
type memApplications struct {
	mu   sync.Mutex
	rows map[string]*models.Application
}

func newMemApplications() *memApplications {
	return &memApplications{rows: map[string]*models.Application{}}
}

func (m *memApplications) CreateIfAbsent(_ context.Context, a *models.Application) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.UserID == a.UserID && r.JobPostingID == a.JobPostingID {
			return false, nil
		}
	}
	cp := *a
	m.rows[a.ID] = &cp
	return true, nil
}

func (m *memApplications) FindByIDForUser(_ context.Context, id, userID string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return nil, utils.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memApplications) FindByID(_ context.Context, id string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memApplications) DeletePending(_ context.Context, id, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok || r.UserID != userID || r.Status != models.ApplicationPending {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func (m *memApplications) LatestByUser(_ context.Context, userID string, limit int) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Application
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	// newest first
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.After(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memApplications) ListByJob(_ context.Context, jobID string) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Application
	for _, r := range m.rows {
		if r.JobPostingID == jobID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memApplications) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	r.Status = status
	cp := *r
	return &cp, nil
}

func (m *memApplications) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// =============================================================================
// Recording publisher / uploader
// =============================================================================

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type mockUploader struct {
	uploadFunc func(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, objectName, contentType, r)
	}
	return "", errNotImplemented
}

func strPtr(s string) *string { return &s }
