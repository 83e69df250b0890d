// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds LearnAdmin's own configuration. WAFFLE's CoreConfig covers
// ports, TLS, logging and CORS; everything specific to the dashboard lives
// here and is passed to every lifecycle hook.
type AppConfig struct {
	// REST backend
	APIBaseURL string
	APITimeout time.Duration

	// MongoDB (audit events only)
	MongoURI      string
	MongoDatabase string

	// Session cookie
	SessionKey    string // signs the cookie and seeds the CSRF key
	SessionName   string
	SessionDomain string // blank means current host
	SessionMaxAge time.Duration

	// Query cache
	CacheBackend  string // "memory" or "redis"
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CDN uploads
	CDNUploadURL     string
	CDNUploadToken   string
	UploadMaxImageMB int
	UploadMaxVideoMB int
	UploadMaxDocMB   int

	// Audit events: "all", "db", "log" or "off"
	AuditLog       string
	AuditRetention time.Duration // 0 keeps events forever

	// Login throttling
	LoginRateIP    int // attempts per IP per minute
	LoginRateEmail int // attempts per email per 5 minutes
}
