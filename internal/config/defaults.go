package config

const (
	defaultMinLen      = 2
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultCatalogPath = "~/.local/share/framescan/catalog.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Workers:   0,
			MinLen:    defaultMinLen,
			Recursive: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Catalog: Catalog{
			Enabled: false,
			Path:    defaultCatalogPath,
		},
	}
}
