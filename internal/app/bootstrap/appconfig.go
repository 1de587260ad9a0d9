// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for the portal.
//
// These values come from environment variables (PORTAL_*), configuration
// files, or command-line flags, loaded in LoadConfig. WAFFLE's CoreConfig
// covers the framework-level settings (ports, TLS, log level, CORS, body
// limits); everything specific to this site lives here and is passed to
// each lifecycle hook.
type AppConfig struct {
	// Document store. StoreBackend is "mongo" or "memory"; the in-process
	// store is meant for local development and demos and loses its data on
	// restart.
	StoreBackend     string
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Browser sessions and preference cookies
	SessionKey    string        // signs the session cookie; also keys CSRF tokens
	SessionName   string        // default: portal-session
	SessionDomain string        // blank means current host
	SessionTTL    time.Duration // how long an admin sign-in lasts
	PrefsKey      string        // signs the language/theme cookies

	// Media CDN. Uploads are disabled when any credential is blank.
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadPreset string

	// Transactional e-mail for contact replies. Replies are logged instead
	// of sent when the key is blank.
	ResendAPIKey string
	MailFrom     string

	// First admin account, created on startup when missing.
	AdminBootstrapEmail    string
	AdminBootstrapPassword string

	// Per-client caps on the public forms
	ContactLimit    int
	NewsletterLimit int
	FormWindow      time.Duration
}

// usesMongo reports whether the MongoDB backend is selected.
func (c AppConfig) usesMongo() bool { return c.StoreBackend != backendMemory }
