package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/huffaz-portal/internal/mbti"
	"github.com/yoockh/huffaz-portal/internal/models"
	mongorepo "github.com/yoockh/huffaz-portal/internal/repositories/mongo"
	pgrepo "github.com/yoockh/huffaz-portal/internal/repositories/postgres"
	"github.com/yoockh/huffaz-portal/internal/storage"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"gorm.io/datatypes"
)

const (
	MaxUploadBytes = 5 << 20

	AssessmentHistoryLimit = 10
)

// allowed extensions per document kind
var uploadExtensions = map[string][]string{
	models.DocumentResume:      {".pdf", ".doc", ".docx"},
	models.DocumentCertificate: {".pdf", ".jpg", ".jpeg", ".png"},
}

// ProfileUpdate carries only the fields present in the request body.
type ProfileUpdate struct {
	FirstName     *string
	LastName      *string
	Phone         *string
	MBTIType      *string
	MBTICompleted *bool
}

type UploadInput struct {
	Kind     string
	Filename string
	Size     int64
	Body     io.Reader
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, in ProfileUpdate) (*models.Profile, error)
	UploadDocument(ctx context.Context, userID string, in UploadInput) (url string, p *models.Profile, err error)
	// SetMBTIType stores a client-scored type.
	SetMBTIType(ctx context.Context, userID, mbtiType string) (*models.Profile, error)
	// SubmitAssessment scores the raw answers, records the submission and stores the result.
	SubmitAssessment(ctx context.Context, userID string, answers []int) (mbti.Result, *models.Profile, error)
	AssessmentHistory(ctx context.Context, userID string) ([]models.AssessmentRecord, error)
	LatestAssessment(ctx context.Context, userID string) (*models.AssessmentRecord, error)
}

type profileService struct {
	users       pgrepo.UserRepository
	profiles    pgrepo.ProfileRepository
	assessments mongorepo.AssessmentRepository
	uploader    storage.Uploader
	log         *logrus.Logger
	now         func() time.Time
}

// NewProfileService accepts a nil assessments repository; history is then not recorded.
func NewProfileService(
	users pgrepo.UserRepository,
	profiles pgrepo.ProfileRepository,
	assessments mongorepo.AssessmentRepository,
	uploader storage.Uploader,
	log *logrus.Logger,
) ProfileService {
	return &profileService{
		users:       users,
		profiles:    profiles,
		assessments: assessments,
		uploader:    uploader,
		log:         log,
		now:         time.Now,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.User, error) {
	const op = "ProfileService.Get"

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	if u.Profile == nil {
		return nil, utils.E(utils.CodeNotFound, op, "profile not found", nil)
	}
	return u, nil
}

func (s *profileService) Update(ctx context.Context, userID string, in ProfileUpdate) (*models.Profile, error) {
	const op = "ProfileService.Update"

	fields := map[string]any{}
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) != "" {
		fields["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil && strings.TrimSpace(*in.LastName) != "" {
		fields["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil && strings.TrimSpace(*in.Phone) != "" {
		fields["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.MBTIType != nil && *in.MBTIType != "" {
		code := mbti.Normalize(*in.MBTIType)
		if !mbti.IsValidType(code) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "mbtiType must be one of the 16 type codes", nil)
		}
		fields["mbti_type"] = code
	}
	// completion never goes back to false
	if in.MBTICompleted != nil && *in.MBTICompleted {
		fields["mbti_completed"] = true
	}

	p, err := s.profiles.Update(ctx, userID, fields)
	if err != nil {
		return nil, s.profileErr(op, "failed to update profile", err)
	}
	return p, nil
}

// ObjectName is the storage path for an uploaded document.
func ObjectName(kind, userID string, at time.Time, ext string) string {
	return fmt.Sprintf("uploads/%s-%s-%d%s", kind, userID, at.UnixMilli(), ext)
}

// ValidateUpload checks kind, extension allow-list and size.
func ValidateUpload(kind, filename string, size int64) (ext string, err error) {
	const op = "ProfileService.ValidateUpload"

	allowed, ok := uploadExtensions[kind]
	if !ok {
		return "", utils.E(utils.CodeInvalidArgument, op, "type must be resume or certificate", nil)
	}
	ext = strings.ToLower(filepath.Ext(filename))
	match := false
	for _, a := range allowed {
		if ext == a {
			match = true
			break
		}
	}
	if !match {
		return "", utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("invalid file type: %s accepts %s", kind, strings.Join(allowed, ", ")), nil)
	}
	if size <= 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "file is empty", nil)
	}
	if size > MaxUploadBytes {
		return "", utils.E(utils.CodeInvalidArgument, op, "file too large (max 5MB)", nil)
	}
	return ext, nil
}

func (s *profileService) UploadDocument(ctx context.Context, userID string, in UploadInput) (string, *models.Profile, error) {
	const op = "ProfileService.UploadDocument"

	ext, err := ValidateUpload(in.Kind, in.Filename, in.Size)
	if err != nil {
		return "", nil, err
	}

	if _, err := s.profiles.GetByUserID(ctx, userID); err != nil {
		return "", nil, s.profileErr(op, "failed to get profile", err)
	}

	object := ObjectName(in.Kind, userID, s.now(), ext)
	body := io.LimitReader(in.Body, MaxUploadBytes+1)
	url, err := s.uploader.Upload(ctx, object, storage.ContentTypeFor(in.Filename), body)
	if err != nil {
		return "", nil, utils.E(utils.CodeUnavailable, op, "failed to store file", err)
	}

	p, err := s.profiles.SetDocument(ctx, userID, in.Kind, url)
	if err != nil {
		return "", nil, s.profileErr(op, "failed to update profile", err)
	}
	return url, p, nil
}

func (s *profileService) SetMBTIType(ctx context.Context, userID, mbtiType string) (*models.Profile, error) {
	const op = "ProfileService.SetMBTIType"

	code := mbti.Normalize(mbtiType)
	if code == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "MBTI type is required", nil)
	}
	if !mbti.IsValidType(code) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "mbtiType must be one of the 16 type codes", nil)
	}

	p, err := s.profiles.SetMBTI(ctx, userID, code, nil)
	if err != nil {
		return nil, s.profileErr(op, "failed to update MBTI information", err)
	}
	return p, nil
}

func (s *profileService) SubmitAssessment(ctx context.Context, userID string, answers []int) (mbti.Result, *models.Profile, error) {
	const op = "ProfileService.SubmitAssessment"

	res, err := mbti.Score(answers)
	if err != nil {
		return mbti.Result{}, nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	scores, err := json.Marshal(res.Scores)
	if err != nil {
		return mbti.Result{}, nil, utils.E(utils.CodeInternal, op, "failed to encode scores", err)
	}

	p, err := s.profiles.SetMBTI(ctx, userID, res.Type, datatypes.JSON(scores))
	if err != nil {
		return mbti.Result{}, nil, s.profileErr(op, "failed to update MBTI information", err)
	}

	if s.assessments != nil {
		rec := &models.AssessmentRecord{
			UserID:      userID,
			Answers:     answers,
			Scores:      res.Scores,
			MBTIType:    res.Type,
			SubmittedAt: s.now().UTC(),
		}
		if err := s.assessments.Insert(ctx, rec); err != nil && s.log != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("assessment history write failed")
		}
	}
	return res, p, nil
}

func (s *profileService) AssessmentHistory(ctx context.Context, userID string) ([]models.AssessmentRecord, error) {
	const op = "ProfileService.AssessmentHistory"

	if s.assessments == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "assessment history is not enabled", nil)
	}
	recs, err := s.assessments.ListByUser(ctx, userID, AssessmentHistoryLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load assessment history", err)
	}
	if recs == nil {
		recs = []models.AssessmentRecord{}
	}
	return recs, nil
}

func (s *profileService) LatestAssessment(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	const op = "ProfileService.LatestAssessment"

	if s.assessments == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "assessment history is not enabled", nil)
	}
	rec, err := s.assessments.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no assessment submitted yet", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load assessment", err)
	}
	return rec, nil
}

func (s *profileService) profileErr(op, msg string, err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "profile not found", err)
	}
	return utils.E(utils.CodeInternal, op, msg, err)
}
