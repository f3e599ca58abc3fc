package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/devffery/task-two/internal/config"
	"github.com/devffery/task-two/internal/domain"
	"github.com/devffery/task-two/internal/repository"
	"github.com/devffery/task-two/internal/service"
)

// EnsureSuperuser seeds a superuser account for dev/e2e when the admin
// credentials are configured and the account does not exist yet.
func EnsureSuperuser(lc fx.Lifecycle, cfg config.Config, identity *service.IdentityService, users repository.UserRepository, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ensureSuperuser(ctx, cfg, identity, users, logger)
		},
	})
}

func ensureSuperuser(ctx context.Context, cfg config.Config, identity *service.IdentityService, users repository.UserRepository, logger *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || strings.TrimSpace(cfg.AdminPassword) == "" {
		return nil
	}

	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("bootstrap lookup superuser: %w", err)
	}

	created, err := identity.CreateSuperuser(ctx, service.RegisterInput{
		FirstName: "Admin",
		LastName:  "User",
		Email:     email,
		Password:  cfg.AdminPassword,
	}, service.SuperuserFlags{IsSuperuser: true, IsAdmin: true, IsStaff: true})
	if err != nil {
		return fmt.Errorf("bootstrap create superuser: %w", err)
	}

	if logger != nil {
		logger.Info("bootstrap superuser created",
			zap.String("email", created.Email),
			zap.String("user_id", created.UserID),
		)
	}
	return nil
}
