// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/jawahirullah/portal/internal/app/resources"
	"github.com/jawahirullah/portal/internal/app/store/admins"
	"go.uber.org/zap"
)

// Startup runs once after the store is ready and before the handler is
// built. It registers the shared layouts and makes sure the bootstrap admin
// exists.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	return ensureBootstrapAdmin(ctx, deps.Admins, appCfg, logger)
}

func ensureBootstrapAdmin(ctx context.Context, dir admins.Directory, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.AdminBootstrapEmail == "" {
		logger.Info("no bootstrap admin configured")
		return nil
	}
	created, err := admins.EnsureBootstrap(ctx, dir, appCfg.AdminBootstrapEmail, appCfg.AdminBootstrapPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		logger.Info("created bootstrap admin", zap.String("email", admins.NormalizeEmail(appCfg.AdminBootstrapEmail)))
	}
	return nil
}
