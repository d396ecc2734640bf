package config

const (
	defaultWorkspaceDir = "~/.local/share/pitcount"
	defaultLogDir       = "~/.local/share/pitcount/logs"
	defaultExportDir    = "~/.local/share/pitcount/exports"

	defaultMinRegionConfidence = 0.75
	defaultDemographicNotes    = true

	defaultHeaderRows     = 1
	defaultMaxColumnWidth = 50

	defaultHeaderColor         = "366092"
	defaultLikelyColor         = "FF9999"
	defaultSomewhatLikelyColor = "FFCC99"
	defaultPossibleColor       = "FFFF99"
	defaultNoIdentityColor     = "D8BFD8"

	defaultLogFormat = "pretty"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			LogDir:       defaultLogDir,
			ExportDir:    defaultExportDir,
		},
		Detection: Detection{
			MinRegionConfidence: defaultMinRegionConfidence,
			DemographicNotes:    defaultDemographicNotes,
		},
		Export: Export{
			HeaderRows:          defaultHeaderRows,
			MaxColumnWidth:      defaultMaxColumnWidth,
			HeaderColor:         defaultHeaderColor,
			LikelyColor:         defaultLikelyColor,
			SomewhatLikelyColor: defaultSomewhatLikelyColor,
			PossibleColor:       defaultPossibleColor,
			NoIdentityColor:     defaultNoIdentityColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
