package config

import (
	"time"

	"git.home.luguber.info/inful/policygen/internal/render"
)

const (
	DefaultServerAddress  = ":8080"
	DefaultAdminAddress   = ":8081"
	DefaultMetricsPath    = "/metrics"
	DefaultMaxBodyBytes   = 1 << 20
	DefaultHistoryPath    = "policygen-history.db"
	DefaultRetentionDays  = 90
	DefaultNATSURL        = "nats://127.0.0.1:4222"
	DefaultEventSubject   = "policy.generated"
	DefaultProductName    = "PolicyGen"
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultShutdown       = 10 * time.Second
	defaultPruneInterval  = time.Hour
	defaultConnectTimeout = 2 * time.Second
)

// applyDefaults fills every zero value that has a default. It never
// overrides explicit settings.
func applyDefaults(cfg *Config) {
	s := &cfg.Server
	setDefault(&s.Address, DefaultServerAddress)
	setDefault(&s.ReadTimeout, defaultReadTimeout)
	setDefault(&s.WriteTimeout, defaultWriteTimeout)
	setDefault(&s.IdleTimeout, defaultIdleTimeout)
	setDefault(&s.ShutdownTimeout, defaultShutdown)
	setDefault(&s.MaxBodyBytes, DefaultMaxBodyBytes)

	setDefault(&cfg.Admin.Address, DefaultAdminAddress)
	setDefault(&cfg.Admin.MetricsPath, DefaultMetricsPath)

	setDefault(&cfg.Logging.Level, LogLevelInfo)
	setDefault(&cfg.Logging.Format, LogFormatText)

	setDefault(&cfg.Branding.ProductName, DefaultProductName)
	setDefault(&cfg.Branding.FooterText, render.DefaultFooter)

	setDefault(&cfg.History.Path, DefaultHistoryPath)
	setDefault(&cfg.History.RetentionDays, DefaultRetentionDays)
	setDefault(&cfg.History.PruneInterval, defaultPruneInterval)

	setDefault(&cfg.Events.URL, DefaultNATSURL)
	setDefault(&cfg.Events.Subject, DefaultEventSubject)
	setDefault(&cfg.Events.ConnectTimeout, defaultConnectTimeout)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
