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

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.UserRole
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	// Login returns the user and a signed session token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	Logout(ctx context.Context, p *auth.Principal) error
}

type authService struct {
	users            pgrepo.UserRepository
	tokens           *auth.TokenService
	allowAdminSignup bool
	notify           notifier
}

func NewAuthService(users pgrepo.UserRepository, tokens *auth.TokenService, allowAdminSignup bool, pub events.Publisher, log *logrus.Logger) AuthService {
	return &authService{
		users:            users,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
		notify:           newNotifier(pub, log),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "AuthService.Register"

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role must be STUDENT or ADMIN", nil)
	}
	if role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, utils.E(utils.CodeForbidden, op, "admin self-registration is disabled", nil)
	}
	if err := utils.ValidatePassword(in.Password); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p := &models.Profile{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.CreateWithProfile(ctx, u, p); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "user already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	s.notify.publish(ctx, events.UserRegistered, u.ID, map[string]any{
		"email": u.Email,
		"role":  u.Role,
	})
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "AuthService.Login"

	invalid := utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)

	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", invalid
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, "", invalid
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return u, token, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.Me"

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}

func (s *authService) Logout(ctx context.Context, p *auth.Principal) error {
	const op = "AuthService.Logout"

	if err := s.tokens.Revoke(ctx, p); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to revoke session", err)
	}
	return nil
}
