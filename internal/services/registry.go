package services

import (
	"context"

	"jobhub_backend/internal/notify"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/validator"
)

// ServiceContainer holds the application's stores. Both are constructed once
// at startup and passed by reference to every consumer; there is no ambient
// lookup.
type ServiceContainer struct {
	Auth AuthService
	Jobs JobService
}

// NewServiceContainer wires both stores over one repository set. Session
// restoration and mirror hydration (plus seeding) happen here; when the
// constructor returns, the stores are ready for dependents.
func NewServiceContainer(
	ctx context.Context,
	repos *repositories.Set,
	validate *validator.Validator,
	notifier notify.Notifier,
	seedDemoData bool,
) (*ServiceContainer, error) {
	auth, err := NewAuthService(ctx, repos.Credentials, repos.Sessions, validate, notifier)
	if err != nil {
		return nil, err
	}

	jobs, err := NewJobService(ctx, repos.Records, validate, notifier, seedDemoData)
	if err != nil {
		return nil, err
	}

	return &ServiceContainer{
		Auth: auth,
		Jobs: jobs,
	}, nil
}
