// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"github.com/dalemusser/learnadmin/internal/app/api/backend"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	adminsfeature "github.com/dalemusser/learnadmin/internal/app/features/admins"
	analyticsfeature "github.com/dalemusser/learnadmin/internal/app/features/analytics"
	assignmentsfeature "github.com/dalemusser/learnadmin/internal/app/features/assignments"
	auditlogfeature "github.com/dalemusser/learnadmin/internal/app/features/auditlog"
	coursesfeature "github.com/dalemusser/learnadmin/internal/app/features/courses"
	dashboardfeature "github.com/dalemusser/learnadmin/internal/app/features/dashboard"
	enrollmentsfeature "github.com/dalemusser/learnadmin/internal/app/features/enrollments"
	errorsfeature "github.com/dalemusser/learnadmin/internal/app/features/errors"
	healthfeature "github.com/dalemusser/learnadmin/internal/app/features/health"
	instructorsfeature "github.com/dalemusser/learnadmin/internal/app/features/instructors"
	lessonsfeature "github.com/dalemusser/learnadmin/internal/app/features/lessons"
	loginfeature "github.com/dalemusser/learnadmin/internal/app/features/login"
	logoutfeature "github.com/dalemusser/learnadmin/internal/app/features/logout"
	modulesfeature "github.com/dalemusser/learnadmin/internal/app/features/modules"
	notificationsfeature "github.com/dalemusser/learnadmin/internal/app/features/notifications"
	reviewsfeature "github.com/dalemusser/learnadmin/internal/app/features/reviews"
	ticketsfeature "github.com/dalemusser/learnadmin/internal/app/features/tickets"
	uploadsfeature "github.com/dalemusser/learnadmin/internal/app/features/uploads"
	userinfofeature "github.com/dalemusser/learnadmin/internal/app/features/userinfo"
	usersfeature "github.com/dalemusser/learnadmin/internal/app/features/users"
	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auditlog"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/limits"
	"github.com/dalemusser/learnadmin/internal/app/system/metrics"
	"github.com/dalemusser/learnadmin/internal/app/system/upload"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router. WAFFLE calls it after Startup,
// so connections, the cache and the shared templates are ready.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	viewdata.Init(sessionMgr)

	// Dev mode reloads templates on every render.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	m := metrics.New()

	client := apiclient.New(apiclient.Config{
		BaseURL: appCfg.APIBaseURL,
		Timeout: appCfg.APITimeout,
		Metrics: m,
	}, logger)
	api := backend.New(client, slice.NewRunner(client, deps.Cache, appCfg.CacheTTL, m, logger))

	// With audit_log=off or log, the page still renders but says nothing is stored.
	var auditStore *audit.Store
	if appCfg.AuditLog == auditlog.ModeAll || appCfg.AuditLog == auditlog.ModeDB {
		auditStore = audit.New(deps.MongoDatabase)
	}
	auditLog := auditlog.New(auditStore, logger, auditlog.Uniform(appCfg.AuditLog))

	act := actions.New(sessionMgr, auditLog, logger)
	errLog := errorsfeature.NewErrorLogger(logger)

	uploader := upload.NewUploader(upload.Config{
		Endpoint: appCfg.CDNUploadURL,
		Token:    appCfg.CDNUploadToken,
		Limits: upload.Limits{
			ImageMB:    appCfg.UploadMaxImageMB,
			VideoMB:    appCfg.UploadMaxVideoMB,
			DocumentMB: appCfg.UploadMaxDocMB,
		},
		Metrics: m,
	}, logger)

	r := chi.NewRouter()
	r.Use(m.Middleware)

	// Health checks and static files sit outside sessions and CSRF.
	healthHandler := healthfeature.NewHandler(logger,
		healthfeature.Check{Name: "backend", Critical: true, Run: client.Ping},
		healthfeature.Check{Name: "cache", Run: deps.Cache.Ping},
		healthfeature.MongoCheck(deps.MongoClient),
	)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", m.Handler())
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(r chi.Router) {
		r.Use(limits.FormBody(limits.MaxFormSize))
		r.Use(csrfProtect(appCfg.SessionKey, secure))
		r.Use(sessionMgr.LoadSessionUser)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			target := "/login"
			if _, ok := auth.CurrentUser(r); ok {
				target = "/dashboard"
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		})

		loginHandler := loginfeature.NewHandler(api, sessionMgr, deps.Limiter, auditLog, errLog, logger)
		r.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
		r.Mount("/logout", logoutfeature.Routes(logoutHandler))

		errorsHandler := errorsfeature.NewHandler()
		r.Get("/forbidden", errorsHandler.Forbidden)
		r.Get("/unauthorized", errorsHandler.Unauthorized)
		r.NotFound(errorsHandler.NotFound)

		r.Mount("/dashboard", dashboardfeature.Routes(dashboardfeature.NewHandler(api, act, logger), sessionMgr))

		// Catalog
		r.Mount("/courses", coursesfeature.Routes(coursesfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/modules", modulesfeature.Routes(modulesfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/lessons", lessonsfeature.Routes(lessonsfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/assignments", assignmentsfeature.Routes(assignmentsfeature.NewHandler(api, act, errLog, logger), sessionMgr))

		// Learners and staff
		r.Mount("/enrollments", enrollmentsfeature.Routes(enrollmentsfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/reviews", reviewsfeature.Routes(reviewsfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/instructors", instructorsfeature.Routes(instructorsfeature.NewHandler(api, act, errLog, logger), sessionMgr))

		// Support and outreach
		r.Mount("/tickets", ticketsfeature.Routes(ticketsfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/notifications", notificationsfeature.Routes(notificationsfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/analytics", analyticsfeature.Routes(analyticsfeature.NewHandler(api, act, errLog, logger), sessionMgr))

		// Administration
		r.Mount("/admins", adminsfeature.Routes(adminsfeature.NewHandler(api, act, errLog, logger), sessionMgr))
		r.Mount("/auditlog", auditlogfeature.Routes(auditlogfeature.NewHandler(auditStore, errLog, logger), sessionMgr))
		r.Mount("/uploads", uploadsfeature.Routes(uploadsfeature.NewHandler(uploader, act, logger), sessionMgr))

		userinfofeature.MountRoutes(r, userinfofeature.NewHandler())
	})

	return r, nil
}

// csrfProtect guards every unsafe request. The CSRF key is derived from the
// session key so one secret configures both. Over plain HTTP (dev) requests
// are marked so the origin check does not demand TLS.
func csrfProtect(sessionKey string, secure bool) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("learnadmin-csrf:" + sessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			errorsfeature.RenderForbidden(w, r, "Your form expired. Please reload the page and try again.", "/dashboard")
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
