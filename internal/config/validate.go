package config

import (
	"fmt"
	"regexp"
	"time"

	"pitcount/internal/schema"
)

var colorPattern = regexp.MustCompile(`^[0-9A-F]{6}$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCount(); err != nil {
		return err
	}
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCount() error {
	if c.Count.CountDate != "" {
		if _, err := time.Parse("2006-01-02", c.Count.CountDate); err != nil {
			return fmt.Errorf("count.count_date must be YYYY-MM-DD, got %q", c.Count.CountDate)
		}
	}
	if c.Count.Region != "" {
		if _, err := schema.ParseRegion(c.Count.Region); err != nil {
			return fmt.Errorf("count.region: %w", err)
		}
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.MinRegionConfidence < 0 || c.Detection.MinRegionConfidence > 1 {
		return fmt.Errorf("detection.min_region_confidence must be between 0 and 1, got %v", c.Detection.MinRegionConfidence)
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.HeaderRows < 0 {
		return fmt.Errorf("export.header_rows must not be negative, got %d", c.Export.HeaderRows)
	}
	if c.Export.MaxColumnWidth < 10 {
		return fmt.Errorf("export.max_column_width must be at least 10, got %d", c.Export.MaxColumnWidth)
	}
	colors := map[string]string{
		"export.header_color":          c.Export.HeaderColor,
		"export.likely_color":          c.Export.LikelyColor,
		"export.somewhat_likely_color": c.Export.SomewhatLikelyColor,
		"export.possible_color":        c.Export.PossibleColor,
		"export.no_identity_color":     c.Export.NoIdentityColor,
	}
	for key, value := range colors {
		if !colorPattern.MatchString(value) {
			return fmt.Errorf("%s must be a 6-digit RGB hex value, got %q", key, value)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "pretty", "console", "json":
	default:
		return fmt.Errorf("logging.format must be pretty or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
