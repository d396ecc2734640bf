package config

import "strings"

// normalize expands paths and fills blank fields with defaults so Validate
// and every consumer see fully resolved values.
func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCount()
	c.normalizeDetection()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		c.Paths.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeCount() {
	c.Count.CountDate = strings.TrimSpace(c.Count.CountDate)
	c.Count.Region = strings.TrimSpace(c.Count.Region)
}

func (c *Config) normalizeDetection() {
	if c.Detection.MinRegionConfidence == 0 {
		c.Detection.MinRegionConfidence = defaultMinRegionConfidence
	}
}

func (c *Config) normalizeExport() {
	if c.Export.HeaderRows == 0 {
		c.Export.HeaderRows = defaultHeaderRows
	}
	if c.Export.MaxColumnWidth == 0 {
		c.Export.MaxColumnWidth = defaultMaxColumnWidth
	}
	c.Export.HeaderColor = normalizeColor(c.Export.HeaderColor, defaultHeaderColor)
	c.Export.LikelyColor = normalizeColor(c.Export.LikelyColor, defaultLikelyColor)
	c.Export.SomewhatLikelyColor = normalizeColor(c.Export.SomewhatLikelyColor, defaultSomewhatLikelyColor)
	c.Export.PossibleColor = normalizeColor(c.Export.PossibleColor, defaultPossibleColor)
	c.Export.NoIdentityColor = normalizeColor(c.Export.NoIdentityColor, defaultNoIdentityColor)
}

func normalizeColor(value, fallback string) string {
	value = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(value), "#"))
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
