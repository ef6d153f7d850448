package config

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// OIDCConfig contains optional OpenID Connect sign-in configuration.
// Federation is enabled when Issuer is set.
type OIDCConfig struct {
	Issuer       string `env:"ISSUER"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	GroupsClaim  string `env:"GROUPS_CLAIM"  envDefault:"groups"`
	// NGOGroup is the IdP group whose members are provisioned as NGO accounts.
	NGOGroup string `env:"NGO_GROUP"`
}

// Enabled reports whether federated sign-in is configured.
func (o OIDCConfig) Enabled() bool { return o.Issuer != "" }

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"12"`

	// LoginPath is where unauthenticated callers are redirected.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/auth/login/local"`

	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevSSO only takes effect in dev mode when OIDC is not configured.
	DevSSO DevSSOConfig `envPrefix:"DEV_SSO_"`
}

// DevSSOConfig drives the local stand-in identity provider.
type DevSSOConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Email   string   `env:"EMAIL"   envDefault:"sso@straycare.dev"`
	Name    string   `env:"NAME"    envDefault:"Dev SSO Shelter"`
	Groups  []string `env:"GROUPS"  envDefault:"ngo"    envSeparator:","`
	// NGOGroup plays the part of OIDC_NGO_GROUP for the stand-in.
	NGOGroup string `env:"NGO_GROUP" envDefault:"ngo"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		a.BcryptCost = bcrypt.DefaultCost
	}
	if !strings.HasPrefix(a.LoginPath, "/") || strings.HasPrefix(a.LoginPath, "//") {
		a.LoginPath = "/auth/login/local"
	}
	a.OIDC.Issuer = strings.TrimSpace(a.OIDC.Issuer)
	a.OIDC.NGOGroup = strings.TrimSpace(a.OIDC.NGOGroup)
}

// Validate checks that an enabled OIDC block is complete.
func (a *AuthConfig) Validate() error {
	if !a.OIDC.Enabled() {
		return nil
	}
	var errs []error
	if a.OIDC.ClientID == "" {
		errs = append(errs, errors.New("OIDC_CLIENT_ID is required when OIDC_ISSUER is set"))
	}
	if a.OIDC.RedirectURL == "" {
		errs = append(errs, errors.New("OIDC_REDIRECT_URL is required when OIDC_ISSUER is set"))
	}
	if a.OIDC.NGOGroup == "" {
		errs = append(errs, errors.New("OIDC_NGO_GROUP is required when OIDC_ISSUER is set"))
	}
	return errors.Join(errs...)
}
