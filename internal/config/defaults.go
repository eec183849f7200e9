package config

const (
	defaultLogDir                 = "~/.local/share/takeout/logs"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultExiftoolBinary         = "exiftool"
	defaultExiftoolChunkSize      = 100
	defaultExiftoolTimeoutSeconds = 600
	defaultExiftoolMaxAttempts    = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Exiftool: Exiftool{
			Binary:         defaultExiftoolBinary,
			ChunkSize:      defaultExiftoolChunkSize,
			TimeoutSeconds: defaultExiftoolTimeoutSeconds,
			MaxAttempts:    defaultExiftoolMaxAttempts,
		},
		Reconcile: Reconcile{
			Tryhard: false,
			DryRun:  false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
