package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/huffaz-portal/internal/auth"
	"github.com/yoockh/huffaz-portal/internal/cache"
	"github.com/yoockh/huffaz-portal/internal/events"
	"github.com/yoockh/huffaz-portal/internal/mbti"
	"github.com/yoockh/huffaz-portal/internal/models"
	pgrepo "github.com/yoockh/huffaz-portal/internal/repositories/postgres"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

const RecentJobsLimit = 5

// JobInput is shared by create and edit. Nil fields are left unchanged on edit.
type JobInput struct {
	Title            *string
	Company          *string
	Location         *string
	Salary           *string
	Description      *string
	Requirements     *string
	Responsibilities *string
	Benefits         *string
	EmploymentType   *string
	MBTITypes        *string
	Deadline         *string
	Status           *string
}

type JobService interface {
	ListOpen(ctx context.Context, f pgrepo.JobFilter) ([]models.JobPosting, error)
	Recent(ctx context.Context) ([]models.JobSummary, error)
	// Get returns any posting to admins and only open postings to everyone else.
	Get(ctx context.Context, p *auth.Principal, id string) (*models.JobPosting, error)
	ListAll(ctx context.Context, p *auth.Principal) ([]models.JobPosting, error)
	Create(ctx context.Context, p *auth.Principal, in JobInput) (*models.JobPosting, error)
	Update(ctx context.Context, p *auth.Principal, id string, in JobInput) (*models.JobPosting, error)
	BackfillDetails(ctx context.Context, p *auth.Principal) (int, error)
}

type jobService struct {
	jobs     pgrepo.JobRepository
	cache    cache.Cache
	cacheTTL time.Duration
	notify   notifier
	log      *logrus.Logger
	now      func() time.Time
}

func NewJobService(jobs pgrepo.JobRepository, c cache.Cache, cacheTTL time.Duration, pub events.Publisher, log *logrus.Logger) JobService {
	if c == nil {
		c = cache.Noop{}
	}
	return &jobService{
		jobs:     jobs,
		cache:    c,
		cacheTTL: cacheTTL,
		notify:   newNotifier(pub, log),
		log:      log,
		now:      time.Now,
	}
}

// ParseDeadline accepts YYYY-MM-DD (midnight UTC) or RFC 3339.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (s *jobService) ListOpen(ctx context.Context, f pgrepo.JobFilter) ([]models.JobPosting, error) {
	const op = "JobService.ListOpen"

	if f.MBTIType != "" {
		f.MBTIType = mbti.Normalize(f.MBTIType)
		if !mbti.IsValidType(f.MBTIType) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "mbti must be one of the 16 type codes", nil)
		}
	}
	f.Query = strings.TrimSpace(f.Query)

	now := s.now()
	key := cache.JobsListKey(f.MBTIType, strings.ToLower(f.Query))
	var cached []models.JobPosting
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return stillOpen(cached, now), nil
	} else if err != nil {
		s.warn(err, "job list cache read failed")
	}

	jobs, err := s.jobs.ListOpen(ctx, now, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	if jobs == nil {
		jobs = []models.JobPosting{}
	}
	if ttl := s.ttlFor(now, jobs); ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, jobs, ttl); err != nil {
			s.warn(err, "job list cache write failed")
		}
	}
	return jobs, nil
}

func (s *jobService) Recent(ctx context.Context) ([]models.JobSummary, error) {
	const op = "JobService.Recent"

	var cached []models.JobSummary
	if hit, err := s.cache.GetJSON(ctx, cache.JobsRecentKey, &cached); err == nil && hit {
		return cached, nil
	}

	now := s.now()
	jobs, err := s.jobs.ListOpen(ctx, now, pgrepo.JobFilter{Limit: RecentJobsLimit})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	out := make([]models.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, models.SummaryOf(j))
	}
	if ttl := s.ttlFor(now, jobs); ttl > 0 {
		if err := s.cache.SetJSON(ctx, cache.JobsRecentKey, out, ttl); err != nil {
			s.warn(err, "recent jobs cache write failed")
		}
	}
	return out, nil
}

func (s *jobService) Get(ctx context.Context, p *auth.Principal, id string) (*models.JobPosting, error) {
	const op = "JobService.Get"

	if strings.TrimSpace(id) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}

	var (
		j   *models.JobPosting
		err error
	)
	if p.IsAdmin() {
		j, err = s.jobs.FindByID(ctx, id)
	} else {
		j, err = s.jobs.FindOpenByID(ctx, id, s.now())
	}
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	return j, nil
}

func (s *jobService) ListAll(ctx context.Context, p *auth.Principal) ([]models.JobPosting, error) {
	const op = "JobService.ListAll"

	if err := auth.Authorize(p, auth.ActionManageJobs); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return jobs, nil
}

func (s *jobService) Create(ctx context.Context, p *auth.Principal, in JobInput) (*models.JobPosting, error) {
	const op = "JobService.Create"

	if err := auth.Authorize(p, auth.ActionManageJobs); err != nil {
		return nil, err
	}
	if blank(in.Title) || blank(in.Company) || blank(in.Location) || blank(in.Description) || blank(in.Deadline) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "missing required fields", nil)
	}
	deadline, err := ParseDeadline(*in.Deadline)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "deadline must be YYYY-MM-DD or RFC 3339", err)
	}

	now := s.now().UTC()
	j := &models.JobPosting{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(*in.Title),
		Company:          strings.TrimSpace(*in.Company),
		Location:         strings.TrimSpace(*in.Location),
		Salary:           optional(in.Salary),
		Description:      *in.Description,
		Responsibilities: optional(in.Responsibilities),
		Benefits:         optional(in.Benefits),
		EmploymentType:   optional(in.EmploymentType),
		Deadline:         deadline,
		Status:           models.JobStatusActive,
		AdminID:          p.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.Requirements != nil {
		j.Requirements = *in.Requirements
	}
	if in.MBTITypes != nil {
		types, err := parseTypes(op, *in.MBTITypes)
		if err != nil {
			return nil, err
		}
		j.MBTITypes = types
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	s.invalidate(ctx)
	s.notify.publish(ctx, events.JobCreated, j.ID, map[string]any{"title": j.Title, "company": j.Company})
	return j, nil
}

func (s *jobService) Update(ctx context.Context, p *auth.Principal, id string, in JobInput) (*models.JobPosting, error) {
	const op = "JobService.Update"

	if err := auth.Authorize(p, auth.ActionManageJobs); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	for col, v := range map[string]*string{
		"title":    in.Title,
		"company":  in.Company,
		"location": in.Location,
	} {
		if v != nil {
			if strings.TrimSpace(*v) == "" {
				return nil, utils.E(utils.CodeInvalidArgument, op, col+" cannot be empty", nil)
			}
			fields[col] = strings.TrimSpace(*v)
		}
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "description cannot be empty", nil)
		}
		fields["description"] = *in.Description
	}
	setIfPresent(fields, "salary", in.Salary)
	if in.Requirements != nil {
		fields["requirements"] = *in.Requirements
	}
	setIfPresent(fields, "responsibilities", in.Responsibilities)
	setIfPresent(fields, "benefits", in.Benefits)
	setIfPresent(fields, "employment_type", in.EmploymentType)
	if in.MBTITypes != nil {
		types, err := parseTypes(op, *in.MBTITypes)
		if err != nil {
			return nil, err
		}
		fields["mbti_types"] = types
	}
	if in.Deadline != nil {
		d, err := ParseDeadline(*in.Deadline)
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op, "deadline must be YYYY-MM-DD or RFC 3339", err)
		}
		fields["deadline"] = d
	}
	if in.Status != nil {
		st := models.JobStatus(strings.ToUpper(strings.TrimSpace(*in.Status)))
		if st != models.JobStatusActive && st != models.JobStatusOpen && st != models.JobStatusClosed {
			return nil, utils.E(utils.CodeInvalidArgument, op, "status must be ACTIVE, OPEN or CLOSED", nil)
		}
		fields["status"] = st
	}

	j, err := s.jobs.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	s.invalidate(ctx)
	s.notify.publish(ctx, events.JobUpdated, j.ID, map[string]any{"status": j.Status})
	return j, nil
}

func (s *jobService) BackfillDetails(ctx context.Context, p *auth.Principal) (int, error) {
	const op = "JobService.BackfillDetails"

	if err := auth.Authorize(p, auth.ActionManageJobs); err != nil {
		return 0, err
	}
	jobs, err := s.jobs.ListMissingDetails(ctx)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}

	updated := 0
	for _, j := range jobs {
		fields := map[string]any{}
		if blank(j.Responsibilities) {
			fields["responsibilities"] = GenerateResponsibilities(j.Title, j.Requirements)
		}
		if blank(j.Benefits) {
			fields["benefits"] = GenerateBenefits(j.Title)
		}
		if blank(j.EmploymentType) {
			fields["employment_type"] = EmploymentTypeFor(j.Title)
		}
		if len(fields) == 0 {
			continue
		}
		if _, err := s.jobs.Update(ctx, j.ID, fields); err != nil {
			return updated, utils.E(utils.CodeInternal, op, "failed to update job "+j.ID, err)
		}
		updated++
	}
	if updated > 0 {
		s.invalidate(ctx)
	}
	return updated, nil
}

// ttlFor caps the cache lifetime at the first deadline among jobs. A
// non-positive result means the listing must not be cached.
func (s *jobService) ttlFor(now time.Time, jobs []models.JobPosting) time.Duration {
	ttl := s.cacheTTL
	for _, j := range jobs {
		if left := j.Deadline.Sub(now); left < ttl {
			ttl = left
		}
	}
	return ttl
}

// stillOpen drops cached postings whose deadline or status closed them since they were cached.
func stillOpen(jobs []models.JobPosting, now time.Time) []models.JobPosting {
	out := make([]models.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if j.OpenAt(now) {
			out = append(out, j)
		}
	}
	return out
}

func (s *jobService) invalidate(ctx context.Context) {
	if err := s.cache.DelPrefix(ctx, cache.JobsPrefix); err != nil {
		s.warn(err, "job cache invalidation failed")
	}
}

func (s *jobService) warn(err error, msg string) {
	if s.log != nil {
		s.log.WithError(err).Warn(msg)
	}
}

func parseTypes(op, raw string) (pq.StringArray, error) {
	types := models.ParseMBTITypes(raw)
	for _, t := range types {
		if !mbti.IsValidType(t) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown MBTI type: "+t, nil)
		}
	}
	return types, nil
}

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

func optional(s *string) *string {
	if blank(s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func setIfPresent(fields map[string]any, col string, v *string) {
	if v != nil {
		fields[col] = optional(v)
	}
}
