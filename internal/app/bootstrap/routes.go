// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	aboutfeature "github.com/jawahirullah/portal/internal/app/features/about"
	adminfeature "github.com/jawahirullah/portal/internal/app/features/admin"
	blogfeature "github.com/jawahirullah/portal/internal/app/features/blog"
	booksfeature "github.com/jawahirullah/portal/internal/app/features/books"
	contactfeature "github.com/jawahirullah/portal/internal/app/features/contact"
	errorsfeature "github.com/jawahirullah/portal/internal/app/features/errors"
	healthfeature "github.com/jawahirullah/portal/internal/app/features/health"
	homefeature "github.com/jawahirullah/portal/internal/app/features/home"
	legalfeature "github.com/jawahirullah/portal/internal/app/features/legal"
	newsletterfeature "github.com/jawahirullah/portal/internal/app/features/newsletter"
	preferencesfeature "github.com/jawahirullah/portal/internal/app/features/preferences"
	speechesfeature "github.com/jawahirullah/portal/internal/app/features/speeches"
	"github.com/jawahirullah/portal/internal/app/system/auth"
	"github.com/jawahirullah/portal/internal/app/system/authsession"
	"github.com/jawahirullah/portal/internal/app/system/authsvc"
	"github.com/jawahirullah/portal/internal/app/system/mailer"
	"github.com/jawahirullah/portal/internal/app/system/media"
	"github.com/jawahirullah/portal/internal/app/system/prefs"
	"github.com/jawahirullah/portal/internal/app/system/ratelimit"
	"github.com/jawahirullah/portal/internal/app/system/workers"
	"github.com/jawahirullah/portal/internal/domain/models"
	"go.uber.org/zap"
)

const (
	cleanupInterval = time.Minute
	hookIdleAfter   = 30 * time.Minute
)

// BuildHandler constructs the root HTTP handler.
//
// It boots the template engine, builds the auth, media and mail services,
// applies the global middleware (panic recovery, CSRF, preferences and
// admin session) and mounts the public pages and the admin shell.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	rt := deps.rt
	if rt == nil {
		rt = &runtime{}
	}

	// Auth: one provider, one hook per browser, persisted sign-ins.
	provider := authsvc.NewProvider(deps.Admins, deps.Sessions, appCfg.SessionTTL, logger)
	rt.registry = authsession.NewRegistry(provider, logger)
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionTTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	rt.cleanup = workers.NewSessionCleanup(rt.registry, deps.Sessions, logger, cleanupInterval, hookIdleAfter)
	rt.cleanup.Start()

	prefsStore, err := prefs.New([]byte(appCfg.PrefsKey), prefs.Prefs{}, secure, logger)
	if err != nil {
		logger.Error("preference store init failed", zap.Error(err))
		return nil, err
	}
	rt.prefsTally = prefs.NewTally(prefsStore, logger)

	mediaSvc, err := newMediaService(appCfg, logger)
	if err != nil {
		return nil, err
	}
	mail := mailer.New(appCfg.ResendAPIKey, appCfg.MailFrom, logger)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	rt.loginLimiter = ratelimit.NewLoginLimiter()
	rt.contactLimiter = ratelimit.NewFormLimiter(appCfg.ContactLimit, appCfg.FormWindow)
	rt.signupLimiter = ratelimit.NewFormLimiter(appCfg.NewsletterLimit, appCfg.FormWindow)

	r := chi.NewRouter()
	r.Use(errorsfeature.Recoverer(logger))

	// Health check and static assets sit outside CSRF and sessions.
	healthHandler := healthfeature.NewHandler(storePinger(deps), deps.Backend, mediaSvc.Enabled(), appCfg.ResendAPIKey != "", logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware(appCfg.SessionKey, secure)...)
		r.Use(prefsStore.Middleware)
		r.Use(sessionMgr.LoadSession(rt.registry))

		// Public pages
		r.Mount("/", homefeature.Routes(homefeature.NewHandler(deps.Stores, logger)))
		r.Mount("/about", aboutfeature.Routes(aboutfeature.NewHandler(logger)))
		r.Mount("/books", booksfeature.Routes(booksfeature.NewHandler(deps.Stores, logger)))
		r.Mount("/speeches", speechesfeature.Routes(speechesfeature.NewHandler(deps.Stores, logger)))
		r.Mount("/blog", blogfeature.Routes(blogfeature.NewHandler(deps.Stores, errLog, logger)))
		r.Mount("/contact", contactfeature.Routes(contactfeature.NewHandler(deps.Stores, rt.contactLimiter, logger)))
		r.Mount("/newsletter", newsletterfeature.Routes(newsletterfeature.NewHandler(deps.Stores, rt.signupLimiter, logger)))
		r.Mount("/preferences", preferencesfeature.Routes(preferencesfeature.NewHandler(prefsStore, logger)))

		legalHandler := legalfeature.NewHandler(logger)
		r.Mount("/privacy-policy", legalfeature.PrivacyRoutes(legalHandler))
		r.Mount("/terms-of-service", legalfeature.TermsRoutes(legalHandler))

		// Admin back office
		adminHandler := adminfeature.NewHandler(deps.Stores, mediaSvc, mail, rt.loginLimiter, errLog, logger)
		adminHandler.SiteName = models.DefaultSiteName
		adminHandler.Choices = rt.prefsTally
		r.Route("/admin", adminHandler.MountRoutes)

		r.NotFound(errorsfeature.NewHandler().NotFound)
	})

	return r, nil
}

// csrfMiddleware protects every form post. The key is derived from the
// session key so one secret configures both.
func csrfMiddleware(sessionKey string, secure bool) []func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			errorsfeature.RenderBadRequest(w, r, "Your form has expired. Please reload the page and try again.", "/")
		})),
	)
	if secure {
		return []func(http.Handler) http.Handler{protect}
	}
	// Local development runs over plain HTTP.
	plaintext := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
	return []func(http.Handler) http.Handler{plaintext, protect}
}

// newMediaService builds the Cloudinary-backed media service. Without
// credentials uploads are disabled and fail with a message.
func newMediaService(appCfg AppConfig, logger *zap.Logger) (*media.Service, error) {
	if appCfg.CloudinaryCloudName == "" || appCfg.CloudinaryAPIKey == "" || appCfg.CloudinaryAPISecret == "" {
		logger.Warn("cloudinary not configured; media uploads disabled")
		return media.NewService(nil, "", logger), nil
	}
	backend, err := media.NewCloudinary(appCfg.CloudinaryCloudName, appCfg.CloudinaryAPIKey, appCfg.CloudinaryAPISecret, appCfg.CloudinaryUploadPreset)
	if err != nil {
		logger.Error("cloudinary init failed", zap.Error(err))
		return nil, err
	}
	return media.NewService(backend, appCfg.CloudinaryCloudName, logger), nil
}

// storePinger reports on MongoDB when it is in use; the memory store is
// always reachable.
func storePinger(deps DBDeps) healthfeature.Pinger {
	if deps.MongoClient != nil {
		return healthfeature.MongoPinger(deps.MongoClient)
	}
	return nil
}
