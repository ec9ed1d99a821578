package config

import (
	"strings"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

// normalize case-folds enumerations and trims string settings.
func normalize(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.level").Fatal().Build()
	}
	cfg.Logging.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.format").Fatal().Build()
	}
	cfg.Logging.Format = format

	cfg.Server.Address = strings.TrimSpace(cfg.Server.Address)
	cfg.Admin.Address = strings.TrimSpace(cfg.Admin.Address)
	cfg.Admin.MetricsPath = strings.TrimSpace(cfg.Admin.MetricsPath)
	cfg.History.Path = strings.TrimSpace(cfg.History.Path)
	cfg.Events.URL = strings.TrimSpace(cfg.Events.URL)
	cfg.Events.Subject = strings.TrimSpace(cfg.Events.Subject)
	return nil
}
