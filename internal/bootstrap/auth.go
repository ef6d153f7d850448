package bootstrap

import (
	"context"
	"log/slog"

	"github.com/straycare/straycare/config"
	"github.com/straycare/straycare/internal/adapters/authroles"
	"github.com/straycare/straycare/internal/adapters/devauth"
	"github.com/straycare/straycare/internal/adapters/oidc"
	"github.com/straycare/straycare/internal/core"
	"github.com/straycare/straycare/internal/ports"
	"github.com/straycare/straycare/internal/security"
	"github.com/straycare/straycare/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth     config.AuthConfig
	IsDev    bool
	Users    core.UserRepository
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// BuildAuthService creates the auth service. Password sign-in is always on;
// federated sign-in is added when OIDC is configured and discovery succeeds,
// or in dev mode through the local stand-in provider.
func BuildAuthService(ctx context.Context, cfg AuthConfig) *service.AuthService {
	opts := service.AuthServiceOptions{
		Users:    cfg.Users,
		Sessions: cfg.Sessions,
		Hasher:   security.NewHasher(cfg.Auth.BcryptCost),
		Logger:   cfg.Logger,
	}

	switch {
	case cfg.Auth.OIDC.Enabled():
		if prov := buildOIDCProvider(ctx, cfg); prov != nil {
			opts.Provider = prov
			opts.Roles = authroles.GroupMapper{NGOGroup: cfg.Auth.OIDC.NGOGroup}
		}
	case cfg.IsDev && cfg.Auth.DevSSO.Enabled:
		if prov := buildDevProvider(cfg); prov != nil {
			opts.Provider = prov
			opts.Roles = authroles.GroupMapper{NGOGroup: cfg.Auth.DevSSO.NGOGroup}
		}
	}

	return service.NewAuthService(opts)
}

func buildOIDCProvider(ctx context.Context, cfg AuthConfig) *oidc.Provider {
	o := cfg.Auth.OIDC
	prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		RedirectURL:  o.RedirectURL,
		Scope:        o.Scope,
		Issuer:       o.Issuer,
		GroupsClaim:  o.GroupsClaim,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, federated sign-in disabled",
				"issuer", o.Issuer,
				"error", err,
			)
		}
		return nil
	}
	return prov
}

func buildDevProvider(cfg AuthConfig) *devauth.Provider {
	d := cfg.Auth.DevSSO
	prov, err := devauth.NewProvider(devauth.Config{
		Email:  d.Email,
		Name:   d.Name,
		Groups: d.Groups,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev sign-in provider", "error", err)
		}
		return nil
	}
	if cfg.Logger != nil {
		cfg.Logger.Warn("dev sign-in provider enabled; never use in production", "email", d.Email)
	}
	return prov
}
