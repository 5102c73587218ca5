package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/huffaz-portal/internal/auth"
	"github.com/yoockh/huffaz-portal/internal/events"
	"github.com/yoockh/huffaz-portal/internal/models"
	pgrepo "github.com/yoockh/huffaz-portal/internal/repositories/postgres"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

const MyApplicationsLimit = 5

type ApplicationService interface {
	Apply(ctx context.Context, p *auth.Principal, jobID string) (*models.Application, error)
	Cancel(ctx context.Context, p *auth.Principal, applicationID string) error
	ListMine(ctx context.Context, p *auth.Principal) ([]models.ApplicationView, error)
	ListForJob(ctx context.Context, p *auth.Principal, jobID string) ([]models.ApplicantView, error)
	Review(ctx context.Context, p *auth.Principal, applicationID string, status models.ApplicationStatus) (*models.Application, error)
}

type applicationService struct {
	apps     pgrepo.ApplicationRepository
	jobs     pgrepo.JobRepository
	profiles pgrepo.ProfileRepository
	notify   notifier
	now      func() time.Time
}

func NewApplicationService(
	apps pgrepo.ApplicationRepository,
	jobs pgrepo.JobRepository,
	profiles pgrepo.ProfileRepository,
	pub events.Publisher,
	log *logrus.Logger,
) ApplicationService {
	return &applicationService{
		apps:     apps,
		jobs:     jobs,
		profiles: profiles,
		notify:   newNotifier(pub, log),
		now:      time.Now,
	}
}

func (s *applicationService) Apply(ctx context.Context, p *auth.Principal, jobID string) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if err := auth.Authorize(p, auth.ActionApply); err != nil {
		return nil, err
	}
	if strings.TrimSpace(jobID) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jobPostingId is required", nil)
	}

	profile, err := s.profiles.GetByUserID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	if missing := profile.MissingDocuments(); len(missing) > 0 {
		return nil, utils.MissingDocuments(op, missing)
	}

	now := s.now().UTC()
	job, err := s.jobs.FindOpenByID(ctx, jobID, now)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found or no longer active", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	app := &models.Application{
		ID:           uuid.NewString(),
		UserID:       p.ID,
		JobPostingID: job.ID,
		Status:       models.ApplicationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.apps.CreateIfAbsent(ctx, app)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	if !created {
		return nil, utils.E(utils.CodeConflict, op, "you have already applied for this position", nil)
	}

	s.notify.publish(ctx, events.ApplicationCreated, app.ID, map[string]any{
		"userId":       app.UserID,
		"jobPostingId": app.JobPostingID,
	})
	return app, nil
}

func (s *applicationService) Cancel(ctx context.Context, p *auth.Principal, applicationID string) error {
	const op = "ApplicationService.Cancel"

	if p == nil || p.ID == "" {
		return utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	if strings.TrimSpace(applicationID) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "applicationId is required", nil)
	}

	app, err := s.apps.FindByIDForUser(ctx, applicationID, p.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found or access denied", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	if app.Status != models.ApplicationPending {
		return utils.E(utils.CodeInvalidState, op, "only pending applications can be cancelled", nil)
	}

	deleted, err := s.apps.DeletePending(ctx, applicationID, p.ID)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to cancel application", err)
	}
	if !deleted {
		// reviewed or removed between the read and the delete
		return utils.E(utils.CodeInvalidState, op, "only pending applications can be cancelled", nil)
	}

	s.notify.publish(ctx, events.ApplicationCancelled, app.ID, map[string]any{
		"userId":       app.UserID,
		"jobPostingId": app.JobPostingID,
	})
	return nil
}

func (s *applicationService) ListMine(ctx context.Context, p *auth.Principal) ([]models.ApplicationView, error) {
	const op = "ApplicationService.ListMine"

	if p == nil || p.ID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "authentication required", nil)
	}
	apps, err := s.apps.LatestByUser(ctx, p.ID, MyApplicationsLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	out := make([]models.ApplicationView, 0, len(apps))
	for _, a := range apps {
		out = append(out, models.ViewOf(a))
	}
	return out, nil
}

func (s *applicationService) ListForJob(ctx context.Context, p *auth.Principal, jobID string) ([]models.ApplicantView, error) {
	const op = "ApplicationService.ListForJob"

	if err := auth.Authorize(p, auth.ActionReviewApplications); err != nil {
		return nil, err
	}
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	out := make([]models.ApplicantView, 0, len(apps))
	for _, a := range apps {
		out = append(out, models.ApplicantOf(a))
	}
	return out, nil
}

func (s *applicationService) Review(ctx context.Context, p *auth.Principal, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	const op = "ApplicationService.Review"

	if err := auth.Authorize(p, auth.ActionReviewApplications); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be PENDING, ACCEPTED or REJECTED", nil)
	}

	app, err := s.apps.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update application", err)
	}

	s.notify.publish(ctx, events.ApplicationStatusChanged, app.ID, map[string]any{
		"userId": app.UserID,
		"status": app.Status,
	})
	return app, nil
}
