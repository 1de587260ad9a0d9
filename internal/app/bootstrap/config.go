// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const (
	backendMongo  = "mongo"
	backendMemory = "memory"

	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devPrefsKey   = "dev-only-prefs-key-change-me-0123456789"
)

// appConfigKeys defines the configuration keys for the portal.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: PORTAL_MONGO_URI, PORTAL_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: backendMongo, Desc: "Document store: 'mongo' or 'memory'"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "jawahirullah_portal", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "portal-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_ttl", Default: "12h", Desc: "Admin sign-in lifetime (e.g., 12h, 30m)"},
	{Name: "prefs_key", Default: devPrefsKey, Desc: "Signing key for language/theme cookies"},

	// Cloudinary
	{Name: "cloudinary_cloud_name", Default: "", Desc: "Cloudinary cloud name"},
	{Name: "cloudinary_api_key", Default: "", Desc: "Cloudinary API key"},
	{Name: "cloudinary_api_secret", Default: "", Desc: "Cloudinary API secret"},
	{Name: "cloudinary_upload_preset", Default: "", Desc: "Optional Cloudinary upload preset"},

	// Resend
	{Name: "resend_api_key", Default: "", Desc: "Resend API key (blank logs replies instead of sending)"},
	{Name: "mail_from", Default: "Dr. Jawahirullah <noreply@jawahirullah.org>", Desc: "From address for reply e-mails"},

	// Admin bootstrap
	{Name: "admin_bootstrap_email", Default: "", Desc: "E-mail of the first admin (created on startup when missing)"},
	{Name: "admin_bootstrap_password", Default: "", Desc: "Password for the bootstrap admin"},

	// Public form limits
	{Name: "contact_limit", Default: 5, Desc: "Contact messages allowed per client per window"},
	{Name: "newsletter_limit", Default: 10, Desc: "Newsletter sign-ups allowed per client per window"},
	{Name: "form_window", Default: "1h", Desc: "Window for the public form limits"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// Precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PORTAL", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend:     appValues.String("store_backend"),
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionTTL:    appValues.Duration("session_ttl", 12*time.Hour),
		PrefsKey:      appValues.String("prefs_key"),

		CloudinaryCloudName:    appValues.String("cloudinary_cloud_name"),
		CloudinaryAPIKey:       appValues.String("cloudinary_api_key"),
		CloudinaryAPISecret:    appValues.String("cloudinary_api_secret"),
		CloudinaryUploadPreset: appValues.String("cloudinary_upload_preset"),

		ResendAPIKey: appValues.String("resend_api_key"),
		MailFrom:     appValues.String("mail_from"),

		AdminBootstrapEmail:    appValues.String("admin_bootstrap_email"),
		AdminBootstrapPassword: appValues.String("admin_bootstrap_password"),

		ContactLimit:    appValues.Int("contact_limit"),
		NewsletterLimit: appValues.Int("newsletter_limit"),
		FormWindow:      appValues.Duration("form_window", time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked before any connection attempt. In production
// the development signing keys are refused.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreBackend {
	case backendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	case backendMemory:
		logger.Warn("using the in-memory document store; content is lost on restart")
	default:
		return fmt.Errorf("store_backend must be %q or %q, got %q", backendMongo, backendMemory, appCfg.StoreBackend)
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}
	if appCfg.PrefsKey == "" {
		return fmt.Errorf("prefs_key must be set")
	}
	if coreCfg.Env == "prod" && (appCfg.SessionKey == devSessionKey || appCfg.PrefsKey == devPrefsKey) {
		return fmt.Errorf("session_key and prefs_key must be changed in production")
	}
	if appCfg.AdminBootstrapEmail != "" && len(appCfg.AdminBootstrapPassword) < 8 {
		return fmt.Errorf("admin_bootstrap_password must be at least 8 characters")
	}
	if appCfg.ContactLimit <= 0 || appCfg.NewsletterLimit <= 0 || appCfg.FormWindow <= 0 {
		return fmt.Errorf("contact_limit, newsletter_limit and form_window must be positive")
	}
	return nil
}
