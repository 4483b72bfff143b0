package tracing

import (
	"os"
	"strconv"
	"sync/atomic"

	"github.com/joho/godotenv"
)

// Environment variables recognized by ConfigFromEnv.
const (
	EnvEnabled = "SCOPETRACE_ENABLED"
	EnvSession = "SCOPETRACE_SESSION"
	EnvPath    = "SCOPETRACE_PATH"
)

var disabled atomic.Bool

// SetEnabled turns instrumentation on or off globally, without touching the
// call sites. While disabled, StartScope returns a timer that records
// nothing.
func SetEnabled(on bool) {
	disabled.Store(!on)
}

// Enabled reports whether instrumentation is on. It is on by default.
func Enabled() bool {
	return !disabled.Load()
}

// Config carries the settings of the default session.
type Config struct {
	Enabled bool
	Session string
	Path    string
}

// ConfigFromEnv loads `.env` from the working directory, if present, and
// reads the SCOPETRACE_* variables on top of it. Unset variables leave
// instrumentation enabled, with the session named "scopetrace" and the
// default trace path.
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	cfg := Config{
		Enabled: true,
		Session: "scopetrace",
	}

	if v := os.Getenv(EnvEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}

	if v := os.Getenv(EnvSession); v != "" {
		cfg.Session = v
	}

	if v := os.Getenv(EnvPath); v != "" {
		cfg.Path = v
	}

	return cfg
}

// Apply pushes the configuration onto the process: it sets the global
// enabled switch and, when enabled, begins the default session.
func (c Config) Apply() {
	SetEnabled(c.Enabled)

	if c.Enabled {
		BeginSession(c.Session, c.Path)
	}
}
