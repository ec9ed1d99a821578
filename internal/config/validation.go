package config

import (
	"net"
	"strings"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

// Validate checks cross-field constraints after defaults are applied.
func Validate(cfg *Config) error {
	v := validator{}
	v.address("server.address", cfg.Server.Address)
	v.positive("server.max_body_bytes", cfg.Server.MaxBodyBytes)
	v.positive("server.read_timeout", int64(cfg.Server.ReadTimeout))
	v.positive("server.write_timeout", int64(cfg.Server.WriteTimeout))

	if cfg.Admin.Enabled {
		v.address("admin.address", cfg.Admin.Address)
		if !strings.HasPrefix(cfg.Admin.MetricsPath, "/") {
			v.fail("admin.metrics_path", "must start with /")
		}
		if cfg.Admin.Address == cfg.Server.Address {
			v.fail("admin.address", "must differ from server.address")
		}
	}

	if cfg.History.Enabled {
		v.positive("history.retention_days", int64(cfg.History.RetentionDays))
		v.positive("history.prune_interval", int64(cfg.History.PruneInterval))
	}

	if cfg.Events.Enabled {
		if !strings.HasPrefix(cfg.Events.URL, "nats://") && !strings.HasPrefix(cfg.Events.URL, "tls://") {
			v.fail("events.url", "must use the nats:// or tls:// scheme")
		}
		if cfg.Events.Subject == "" || strings.ContainsAny(cfg.Events.Subject, " \t*>") {
			v.fail("events.subject", "must be a literal subject without wildcards")
		}
	}
	return v.err()
}

type validator struct {
	problems []string
}

func (v *validator) fail(field, msg string) {
	v.problems = append(v.problems, field+" "+msg)
}

func (v *validator) address(field, addr string) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		v.fail(field, "must be host:port")
	}
}

func (v *validator) positive(field string, n int64) {
	if n <= 0 {
		v.fail(field, "must be positive")
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return errors.ConfigError("configuration validation failed: " + strings.Join(v.problems, "; ")).
		WithContext("problems", v.problems).
		Build()
}
