package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestAPIURLTrailingSlashTrimmed(t *testing.T) {
	t.Setenv("API_URL", "http://vesta-api:9090/api/")

	cfg := New()
	if cfg.APIURL != "http://vesta-api:9090/api" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", cfg.APIURL)
	}
}

func TestTimeoutsReadFromEnv(t *testing.T) {
	t.Setenv("API_CONNECT_TIMEOUT_MS", "2500")
	t.Setenv("API_READ_TIMEOUT_MS", "8000")

	cfg := New()
	if cfg.APIConnectTimeout != 2500*time.Millisecond {
		t.Fatalf("unexpected connect timeout: %v", cfg.APIConnectTimeout)
	}
	if cfg.APIReadTimeout != 8*time.Second {
		t.Fatalf("unexpected read timeout: %v", cfg.APIReadTimeout)
	}
}

func TestTimeoutDefaultsWhenUnset(t *testing.T) {
	unsetEnv(t, "API_CONNECT_TIMEOUT_MS")
	unsetEnv(t, "API_READ_TIMEOUT_MS")

	cfg := New()
	if cfg.APIConnectTimeout != 5*time.Second {
		t.Fatalf("unexpected default connect timeout: %v", cfg.APIConnectTimeout)
	}
	if cfg.APIReadTimeout != 10*time.Second {
		t.Fatalf("unexpected default read timeout: %v", cfg.APIReadTimeout)
	}
}

func TestInvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "not-a-number")

	cfg := New()
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected default session TTL, got %v", cfg.SessionTTL)
	}
}
