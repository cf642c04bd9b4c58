package services

import (
	"context"
	"fmt"
	"sync"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/notify"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/validator"
	"jobhub_backend/pkg/apperrors"
)

// AuthService owns the current-user identity and the user records behind it.
// All outcomes are surfaced through the injected Notifier; Login and Register
// report success as a boolean, never as a raised error.
type AuthService interface {
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, name, email, password string, role models.UserRole) bool
	Logout(ctx context.Context)
	IsAdmin() bool
	// CurrentUser returns a sanitized copy of the authenticated user, or nil.
	CurrentUser() *models.User
	// ToggleUserRole flips a user between jobseeker and admin. Admin-only.
	ToggleUserRole(ctx context.Context, actorID, userID string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type AuthServiceImpl struct {
	creds    repositories.CredentialRepository
	sessions repositories.SessionRepository
	validate *validator.Validator
	notifier notify.Notifier

	mu      sync.Mutex
	current *models.User
}

// NewAuthService restores a previously persisted session before returning;
// the service is ready for dependents as soon as the constructor completes.
func NewAuthService(
	ctx context.Context,
	creds repositories.CredentialRepository,
	sessions repositories.SessionRepository,
	validate *validator.Validator,
	notifier notify.Notifier,
) (AuthService, error) {
	s := &AuthServiceImpl{
		creds:    creds,
		sessions: sessions,
		validate: validate,
		notifier: notifier,
	}

	restored, err := sessions.Load(ctx)
	if err != nil {
		// Unreadable session storage is not fatal; start logged out.
		logger.WithError(err).Warn("session restore failed, starting logged out")
	} else if restored != nil {
		s.current = restored.Sanitized()
		logger.Info("session restored", "user_id", restored.ID, "email", restored.Email)
	}

	return s, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) bool {
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil || user.Password != password {
		if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.WithError(err).Error("login lookup failed", "email", email)
		}
		s.notifier.Notify(notify.Notification{
			Title:       "Login failed",
			Description: "Invalid email or password",
			Severity:    notify.SeverityError,
		})
		return false
	}

	sanitized := user.Sanitized()
	if err := s.sessions.Save(ctx, sanitized); err != nil {
		logger.WithError(err).Error("failed to persist session", "user_id", user.ID)
		s.notifier.Notify(notify.Notification{
			Title:       "Login failed",
			Description: "Could not save your session. Please try again.",
			Severity:    notify.SeverityError,
		})
		return false
	}

	s.mu.Lock()
	s.current = sanitized
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Login successful",
		Description: fmt.Sprintf("Welcome back, %s!", user.Name),
		Severity:    notify.SeverityNormal,
	})
	return true
}

func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string, role models.UserRole) bool {
	if role == "" {
		role = models.UserRoleJobseeker
	}

	input := models.RegisterInput{Name: name, Email: email, Password: password, Role: role}
	if err := s.validate.Validate(&input); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Registration failed",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return false
	}

	user := models.NewUser(name, email, password, role)
	if err := s.creds.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			s.notifier.Notify(notify.Notification{
				Title:       "Registration failed",
				Description: "Email already in use",
				Severity:    notify.SeverityError,
			})
		} else {
			logger.WithError(err).Error("failed to create user", "email", email)
			s.notifier.Notify(notify.Notification{
				Title:       "Registration failed",
				Description: "Something went wrong. Please try again.",
				Severity:    notify.SeverityError,
			})
		}
		return false
	}

	// Log the new user in right away, as a registration is also a login.
	sanitized := user.Sanitized()
	if err := s.sessions.Save(ctx, sanitized); err != nil {
		logger.WithError(err).Error("failed to persist session after registration", "user_id", user.ID)
	}

	s.mu.Lock()
	s.current = sanitized
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Registration successful",
		Description: "Your account has been created",
		Severity:    notify.SeverityNormal,
	})
	return true
}

// Logout clears the session. Calling it while logged out is harmless.
func (s *AuthServiceImpl) Logout(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		logger.WithError(err).Error("failed to clear persisted session")
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.notifier.Notify(notify.Notification{
		Title:       "Logged out",
		Description: "You have been logged out successfully",
		Severity:    notify.SeverityNormal,
	})
}

func (s *AuthServiceImpl) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Role == models.UserRoleAdmin
}

func (s *AuthServiceImpl) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

func (s *AuthServiceImpl) ToggleUserRole(ctx context.Context, actorID, userID string) error {
	actor, err := s.creds.FindByID(ctx, actorID)
	if err != nil || actor.Role != models.UserRoleAdmin {
		s.notifier.Notify(notify.Notification{
			Title:       "Permission denied",
			Description: "Only administrators can change user roles",
			Severity:    notify.SeverityError,
		})
		return apperrors.ErrForbidden
	}

	target, err := s.creds.FindByID(ctx, userID)
	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:       "Role update failed",
			Description: "User not found",
			Severity:    notify.SeverityError,
		})
		return apperrors.ErrUserNotFound
	}

	newRole := models.UserRoleAdmin
	if target.Role == models.UserRoleAdmin {
		newRole = models.UserRoleJobseeker
	}

	if err := s.creds.UpdateRole(ctx, userID, newRole); err != nil {
		logger.WithError(err).Error("failed to update role", "user_id", userID)
		s.notifier.Notify(notify.Notification{
			Title:       "Role update failed",
			Description: "Something went wrong. Please try again.",
			Severity:    notify.SeverityError,
		})
		return apperrors.InternalError(err)
	}

	// Keep the in-memory identity honest if the toggled user is logged in.
	s.mu.Lock()
	if s.current != nil && s.current.ID == userID {
		s.current.Role = newRole
	}
	s.mu.Unlock()

	description := fmt.Sprintf("%s is now a jobseeker", target.Name)
	if newRole == models.UserRoleAdmin {
		description = fmt.Sprintf("%s is now an admin", target.Name)
	}
	s.notifier.Notify(notify.Notification{
		Title:       "User role updated",
		Description: description,
		Severity:    notify.SeverityNormal,
	})
	return nil
}

func (s *AuthServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.creds.FindAll(ctx)
}

func (s *AuthServiceImpl) CountUsers(ctx context.Context) (int64, error) {
	return s.creds.CountAll(ctx)
}
