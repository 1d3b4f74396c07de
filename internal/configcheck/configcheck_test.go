package configcheck

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"mediquick-api/config"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Port: "8080", Env: "production", LogLevel: "info"},
		DB:    config.DBConfig{Host: "db", Port: "5432", User: "mediquick", Name: "mediquick", SSLMode: "require"},
		Redis: config.RedisConfig{Host: "redis", Port: "6379"},
		JWT:   config.JWTConfig{Secret: strings.Repeat("s", MinJWTSecretLength)},
	}
}

func checks(findings []Finding) []string {
	var names []string
	for _, f := range findings {
		names = append(names, f.Check)
	}
	return names
}

func newChecker(opts ...Option) *Checker {
	log, _ := test.NewNullLogger()
	return NewChecker(log, opts...)
}

func TestCheckCleanConfig(t *testing.T) {
	report := newChecker(WithMigrations(func() ([]string, error) {
		return []string{"000001_init.up.sql", "000001_init.down.sql"}, nil
	})).Check(validConfig())

	assert.False(t, report.HasErrors())
	assert.Empty(t, report.Filter(SeverityWarning))
	assert.Contains(t, checks(report.Filter(SeveritySuccess)), "MIGRATIONS")
}

func TestCheckErrors(t *testing.T) {
	cfg := validConfig()
	cfg.DB.Host = ""
	cfg.DB.Name = " "
	cfg.App.Port = "http"
	cfg.App.Env = "prod"
	cfg.Redis.Port = "0"
	cfg.JWT.Secret = "short"

	report := newChecker().Check(cfg)

	require.True(t, report.HasErrors())
	assert.ElementsMatch(t,
		[]string{"DB_HOST", "DB_NAME", "APP_PORT", "APP_ENV", "REDIS_ADDR", "JWT_SECRET"},
		checks(report.Filter(SeverityError)))
}

func TestCheckProductionWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.DB.SSLMode = "disable"
	cfg.App.LogLevel = "debug"

	report := newChecker().Check(cfg)

	assert.False(t, report.HasErrors())
	assert.ElementsMatch(t, []string{"DB_SSLMODE", "LOG_LEVEL"}, checks(report.Filter(SeverityWarning)))

	cfg.App.Env = "development"
	report = newChecker().Check(cfg)
	assert.Empty(t, report.Filter(SeverityWarning))
}

func TestCheckDefaultSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = config.DefaultJWTSecret

	report := newChecker().Check(cfg)
	assert.Equal(t, []string{"JWT_SECRET"}, checks(report.Filter(SeverityError)))

	cfg.App.Env = "development"
	report = newChecker().Check(cfg)
	assert.False(t, report.HasErrors())
	assert.Equal(t, []string{"JWT_SECRET"}, checks(report.Filter(SeverityWarning)))
}

func TestCheckMigrations(t *testing.T) {
	report := newChecker(WithMigrations(func() ([]string, error) { return nil, nil })).Check(validConfig())
	assert.Equal(t, []string{"MIGRATIONS"}, checks(report.Filter(SeverityError)))

	report = newChecker(WithMigrations(func() ([]string, error) { return nil, errors.New("boom") })).Check(validConfig())
	require.Len(t, report.Filter(SeverityError), 1)
	assert.Contains(t, report.Filter(SeverityError)[0].Message, "boom")

	report = newChecker().Check(validConfig())
	assert.NotContains(t, checks(report.Findings), "MIGRATIONS")
}

func TestReportWrite(t *testing.T) {
	cfg := validConfig()
	cfg.DB.User = ""
	cfg.DB.SSLMode = "disable"

	var buf bytes.Buffer
	require.NoError(t, newChecker().Check(cfg).Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "Warnings (1)")
	assert.Contains(t, out, "Errors (1)")
	assert.Contains(t, out, "[ERROR] DB_USER: is required")
	assert.Contains(t, out, "1 warnings, 1 errors")
	assert.Less(t, strings.Index(out, "Passed"), strings.Index(out, "Warnings"))
}
