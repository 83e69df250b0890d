package timeouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	timeouts.Reset()

	if got := timeouts.Ping(); got != timeouts.DefaultPing {
		t.Errorf("Ping() = %v, want %v", got, timeouts.DefaultPing)
	}
	if got := timeouts.Medium(); got != timeouts.DefaultMedium {
		t.Errorf("Medium() = %v, want %v", got, timeouts.DefaultMedium)
	}
	if got := timeouts.Upload(); got != timeouts.DefaultUpload {
		t.Errorf("Upload() = %v, want %v", got, timeouts.DefaultUpload)
	}
}

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	timeouts.Reset()
	defer timeouts.Reset()

	timeouts.Configure(timeouts.Config{Short: 7 * time.Second})

	if got := timeouts.Short(); got != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", got)
	}
	if got := timeouts.Long(); got != timeouts.DefaultLong {
		t.Errorf("Long() = %v, want default %v", got, timeouts.DefaultLong)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	timeouts.Reset()
	defer timeouts.Reset()

	t.Setenv("LEARNADMIN_TIMEOUT_PING", "750ms")
	t.Setenv("LEARNADMIN_TIMEOUT_LONG", "not-a-duration")
	t.Setenv("LEARNADMIN_TIMEOUT_UPLOAD", "-5s")

	if n := timeouts.ConfigureFromEnv(); n != 1 {
		t.Errorf("ConfigureFromEnv() applied %d values, want 1", n)
	}
	if got := timeouts.Ping(); got != 750*time.Millisecond {
		t.Errorf("Ping() = %v, want 750ms", got)
	}
	if got := timeouts.Long(); got != timeouts.DefaultLong {
		t.Errorf("Long() = %v, want default", got)
	}
	if got := timeouts.Upload(); got != timeouts.DefaultUpload {
		t.Errorf("Upload() = %v, want default", got)
	}
}

func TestWithTimeout_CancelsContext(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	<-ctx.Done()
	cancel()

	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
