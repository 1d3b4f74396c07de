// Package configcheck inspects a loaded configuration for values that would
// break or weaken a deployment.
package configcheck

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mediquick-api/config"

	"github.com/sirupsen/logrus"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// MinJWTSecretLength is the shortest secret accepted for signing tokens.
const MinJWTSecretLength = 32

var knownEnvs = []string{"development", "staging", "production", "test"}

type Finding struct {
	Severity Severity `json:"severity"`
	Check    string   `json:"check"`
	Message  string   `json:"message"`
}

type Report struct {
	Findings []Finding `json:"findings"`
}

func (r *Report) add(sev Severity, check, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{Severity: sev, Check: check, Message: fmt.Sprintf(format, args...)})
}

// Filter returns the findings of one severity in the order they were made.
func (r *Report) Filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) HasErrors() bool {
	return len(r.Filter(SeverityError)) > 0
}

// Write prints the findings grouped by severity followed by a summary line.
func (r *Report) Write(w io.Writer) error {
	sections := []struct {
		sev   Severity
		title string
	}{
		{SeveritySuccess, "Passed"},
		{SeverityWarning, "Warnings"},
		{SeverityError, "Errors"},
	}

	for _, s := range sections {
		findings := r.Filter(s.sev)
		if len(findings) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%d)\n", s.title, len(findings)); err != nil {
			return err
		}
		for _, f := range findings {
			if _, err := fmt.Fprintf(w, "  [%s] %s: %s\n", strings.ToUpper(string(f.Severity)), f.Check, f.Message); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d passed, %d warnings, %d errors\n",
		len(r.Filter(SeveritySuccess)), len(r.Filter(SeverityWarning)), len(r.Filter(SeverityError)))
	return err
}

type Checker struct {
	log        *logrus.Logger
	migrations func() ([]string, error)
}

type Option func(*Checker)

// WithMigrations enables the embedded migrations check.
func WithMigrations(list func() ([]string, error)) Option {
	return func(c *Checker) {
		c.migrations = list
	}
}

func NewChecker(log *logrus.Logger, opts ...Option) *Checker {
	c := &Checker{log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs every rule against cfg. It never fails; problems are findings.
func (c *Checker) Check(cfg *config.Config) *Report {
	r := &Report{}

	c.checkDatabase(r, cfg)
	c.checkJWT(r, cfg)
	c.checkApp(r, cfg)
	c.checkRedis(r, cfg)
	c.checkMigrations(r)

	c.log.WithFields(logrus.Fields{
		"warnings": len(r.Filter(SeverityWarning)),
		"errors":   len(r.Filter(SeverityError)),
	}).Debug("Configuration checked")

	return r
}

func (c *Checker) checkDatabase(r *Report, cfg *config.Config) {
	required := []struct {
		name, value string
	}{
		{"DB_HOST", cfg.DB.Host},
		{"DB_NAME", cfg.DB.Name},
		{"DB_USER", cfg.DB.User},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			r.add(SeverityError, field.name, "is required")
		} else {
			r.add(SeveritySuccess, field.name, "is set")
		}
	}

	if !isPort(cfg.DB.Port) {
		r.add(SeverityError, "DB_PORT", "%q is not a valid port", cfg.DB.Port)
	}

	if cfg.IsProduction() && cfg.DB.SSLMode == "disable" {
		r.add(SeverityWarning, "DB_SSLMODE", "TLS is disabled in production")
	}
}

func (c *Checker) checkJWT(r *Report, cfg *config.Config) {
	switch {
	case cfg.JWT.Secret == "":
		r.add(SeverityError, "JWT_SECRET", "is required")
		return
	case cfg.JWT.Secret == config.DefaultJWTSecret:
		if cfg.IsProduction() {
			r.add(SeverityError, "JWT_SECRET", "uses the default value in production")
		} else {
			r.add(SeverityWarning, "JWT_SECRET", "uses the default value")
		}
		return
	}

	if len(cfg.JWT.Secret) < MinJWTSecretLength {
		r.add(SeverityError, "JWT_SECRET", "must be at least %d characters, got %d", MinJWTSecretLength, len(cfg.JWT.Secret))
		return
	}
	r.add(SeveritySuccess, "JWT_SECRET", "is strong enough")
}

func (c *Checker) checkApp(r *Report, cfg *config.Config) {
	if isPort(cfg.App.Port) {
		r.add(SeveritySuccess, "APP_PORT", "is %s", cfg.App.Port)
	} else {
		r.add(SeverityError, "APP_PORT", "%q is not a valid port", cfg.App.Port)
	}

	known := false
	for _, env := range knownEnvs {
		if cfg.App.Env == env {
			known = true
			break
		}
	}
	if known {
		r.add(SeveritySuccess, "APP_ENV", "is %s", cfg.App.Env)
	} else {
		r.add(SeverityError, "APP_ENV", "%q is not one of %s", cfg.App.Env, strings.Join(knownEnvs, ", "))
	}

	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	switch {
	case err != nil:
		r.add(SeverityWarning, "LOG_LEVEL", "%q is unknown, info will be used", cfg.App.LogLevel)
	case cfg.IsProduction() && level >= logrus.DebugLevel:
		r.add(SeverityWarning, "LOG_LEVEL", "%s logging is enabled in production", level)
	}
}

func (c *Checker) checkRedis(r *Report, cfg *config.Config) {
	if strings.TrimSpace(cfg.Redis.Host) == "" || !isPort(cfg.Redis.Port) {
		r.add(SeverityError, "REDIS_ADDR", "%q:%q is not a usable address", cfg.Redis.Host, cfg.Redis.Port)
		return
	}
	r.add(SeveritySuccess, "REDIS_ADDR", "is %s:%s", cfg.Redis.Host, cfg.Redis.Port)
}

func (c *Checker) checkMigrations(r *Report) {
	if c.migrations == nil {
		return
	}
	files, err := c.migrations()
	if err != nil {
		r.add(SeverityError, "MIGRATIONS", "cannot be listed: %v", err)
		return
	}
	if len(files) == 0 {
		r.add(SeverityError, "MIGRATIONS", "no migration files are embedded")
		return
	}
	r.add(SeveritySuccess, "MIGRATIONS", "%d files embedded", len(files))
}

func isPort(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0 && n <= 65535
}
