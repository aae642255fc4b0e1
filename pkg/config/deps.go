package config

import (
	"log/slog"

	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
)

// Deps holds the infrastructure dependencies for building the app and
// services.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
	Config *App
}
