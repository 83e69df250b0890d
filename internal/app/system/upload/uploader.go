package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/metrics"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Config configures an Uploader.
type Config struct {
	Endpoint string // CDN upload URL
	Token    string // optional bearer token for the CDN
	Timeout  time.Duration
	Limits   Limits
	Metrics  *metrics.Metrics
}

// Result describes a stored object.
type Result struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Uploader posts validated files to the CDN as multipart/form-data.
type Uploader struct {
	rc  *resty.Client
	cfg Config
	log *zap.Logger
	now func() time.Time
}

// NewUploader builds an Uploader. A zero Timeout defaults to 5 minutes.
func NewUploader(cfg Config, logger *zap.Logger) *Uploader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &Uploader{
		rc:  resty.New().SetTimeout(cfg.Timeout),
		cfg: cfg,
		log: logger,
		now: time.Now,
	}
}

// Limits exposes the configured size limits.
func (u *Uploader) Limits() Limits { return u.cfg.Limits }

// cdnResponse accepts both a bare {"url": ...} and an enveloped
// {"data": {"url": ...}} reply.
type cdnResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload validates r against kind's rule and sends it to the CDN.
func (u *Uploader) Upload(ctx context.Context, kind Kind, filename, declared string, r io.Reader, size int64) (Result, error) {
	res, err := u.upload(ctx, kind, filename, declared, r, size)
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
		if StatusFor(err) >= 500 {
			outcome = "failed"
		}
	}
	u.cfg.Metrics.Upload(string(kind), outcome)
	return res, err
}

func (u *Uploader) upload(ctx context.Context, kind Kind, filename, declared string, r io.Reader, size int64) (Result, error) {
	rule, err := u.cfg.Limits.RuleFor(kind)
	if err != nil {
		return Result{}, err
	}
	sniffed, body, err := Sniff(r)
	if err != nil {
		return Result{}, fmt.Errorf("read upload: %w", err)
	}
	if err := Validate(rule, declared, sniffed, size); err != nil {
		return Result{}, err
	}
	if u.cfg.Endpoint == "" {
		return Result{}, fmt.Errorf("%w: no CDN endpoint configured", ErrCDN)
	}

	key := Key(kind, filename, u.now())
	req := u.rc.R().
		SetContext(ctx).
		SetMultipartField("file", key[strings.LastIndexByte(key, '/')+1:], sniffed, body).
		SetMultipartFormData(map[string]string{"key": key, "kind": string(kind)})
	if u.cfg.Token != "" {
		req.SetAuthToken(u.cfg.Token)
	}

	resp, err := req.Post(u.cfg.Endpoint)
	if err != nil {
		u.log.Warn("CDN upload failed", zap.String("key", key), zap.Error(err))
		return Result{}, fmt.Errorf("%w: %v", ErrCDN, err)
	}

	var out cdnResponse
	_ = json.Unmarshal(resp.Body(), &out)
	if resp.IsError() {
		u.log.Warn("CDN rejected upload",
			zap.String("key", key),
			zap.Int("status", resp.StatusCode()),
			zap.String("message", out.Message))
		return Result{}, fmt.Errorf("%w: status %d", ErrCDN, resp.StatusCode())
	}
	url := out.URL
	if url == "" {
		url = out.Data.URL
	}
	if url == "" {
		return Result{}, fmt.Errorf("%w: response has no url", ErrCDN)
	}

	u.log.Info("file uploaded",
		zap.String("kind", string(kind)),
		zap.String("key", key),
		zap.Int64("size", size))
	return Result{URL: url, Key: key, ContentType: sniffed, Size: size}, nil
}
