// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// Cache backends accepted by cache_backend.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// appConfigKeys defines LearnAdmin's configuration keys. Each can be set in
// a config file (api_base_url), the environment (LEARNADMIN_API_BASE_URL) or
// a flag (--api_base_url).
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:5000/api", Desc: "Base URL of the LMS REST backend"},
	{Name: "api_timeout", Default: "15s", Desc: "Timeout for one backend request"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (audit log)"},
	{Name: "mongo_database", Default: "learnadmin", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "learnadmin-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "cache_backend", Default: CacheMemory, Desc: "Query cache: 'memory' or 'redis'"},
	{Name: "cache_ttl", Default: "60s", Desc: "How long cached backend reads stay fresh"},
	{Name: "redis_addr", Default: "", Desc: "Redis address (host:port) when cache_backend is redis"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	{Name: "cdn_upload_url", Default: "", Desc: "CDN endpoint that receives multipart uploads"},
	{Name: "cdn_upload_token", Default: "", Desc: "Bearer token sent to the CDN"},
	{Name: "upload_max_image_mb", Default: 5, Desc: "Largest accepted image upload"},
	{Name: "upload_max_video_mb", Default: 500, Desc: "Largest accepted video upload"},
	{Name: "upload_max_document_mb", Default: 20, Desc: "Largest accepted document upload"},

	{Name: "audit_log", Default: auditlog.ModeAll, Desc: "Audit events: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_retention", Default: "0s", Desc: "Delete stored audit events older than this (0 keeps them forever)"},

	{Name: "login_rate_ip", Default: 10, Desc: "Sign-in attempts allowed per IP per minute"},
	{Name: "login_rate_email", Default: 5, Desc: "Sign-in attempts allowed per email per 5 minutes"},
}

// LoadConfig loads WAFFLE core config and LearnAdmin's app config. Values
// merge with precedence flags > env (LEARNADMIN_*) > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LEARNADMIN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),
		APITimeout: appValues.Duration("api_timeout", 15*time.Second),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CacheBackend:  appValues.String("cache_backend"),
		CacheTTL:      appValues.Duration("cache_ttl", time.Minute),
		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		CDNUploadURL:     appValues.String("cdn_upload_url"),
		CDNUploadToken:   appValues.String("cdn_upload_token"),
		UploadMaxImageMB: appValues.Int("upload_max_image_mb"),
		UploadMaxVideoMB: appValues.Int("upload_max_video_mb"),
		UploadMaxDocMB:   appValues.Int("upload_max_document_mb"),

		AuditLog:       appValues.String("audit_log"),
		AuditRetention: appValues.Duration("audit_retention", 0),

		LoginRateIP:    appValues.Int("login_rate_ip"),
		LoginRateEmail: appValues.Int("login_rate_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configurations that cannot work, before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateAppConfig(appCfg); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	if coreCfg.Env == "prod" && len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters in production")
	}
	return nil
}

func validateAppConfig(appCfg AppConfig) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", appCfg.APIBaseURL)
	}

	switch appCfg.CacheBackend {
	case CacheMemory:
	case CacheRedis:
		if appCfg.RedisAddr == "" {
			return fmt.Errorf("cache_backend redis requires redis_addr")
		}
	default:
		return fmt.Errorf("unknown cache_backend %q (want memory or redis)", appCfg.CacheBackend)
	}

	switch appCfg.AuditLog {
	case auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
	default:
		return fmt.Errorf("unknown audit_log mode %q", appCfg.AuditLog)
	}
	if appCfg.AuditRetention < 0 {
		return fmt.Errorf("audit_retention must not be negative")
	}
	if appCfg.AuditRetention > 0 && appCfg.AuditRetention < time.Hour {
		return fmt.Errorf("audit_retention must be at least 1h, got %s", appCfg.AuditRetention)
	}

	if appCfg.CDNUploadURL != "" {
		if u, err := url.Parse(appCfg.CDNUploadURL); err != nil || u.Host == "" {
			return fmt.Errorf("cdn_upload_url is not a valid URL: %q", appCfg.CDNUploadURL)
		}
	}
	return nil
}
