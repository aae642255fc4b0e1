// Package security provides the business logic of the prisoner-money
// security core: linking credits and disbursements to canonical profiles,
// keeping profile aggregates consistent, screening pending credits against
// the fraud rules and processing check decisions.
//
// Every operation runs inside one UnitOfWork transaction: profile creation,
// linking and check writes commit together or roll back together.
package security

import (
	"log/slog"
	"time"

	"github.com/ministryofjustice/money-to-prisoners-security/pkg/config"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
)

// Service implements the security core operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service from the dependency container.
func NewService(deps config.Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:    deps.Uow,
		logger: logger,
		now:    time.Now,
	}
}
