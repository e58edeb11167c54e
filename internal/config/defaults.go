package config

const (
	defaultDataDir               = "~/.local/share/ladle"
	defaultLogDir                = "~/.local/share/ladle/logs"
	defaultSocketPath            = "~/.local/share/ladle/ladled.sock"
	defaultLogLevel              = "info"
	defaultLogFormat             = "console"
	defaultMaxActivePipelines    = 4
	defaultServiceTimeoutSeconds = 120
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			SocketPath: defaultSocketPath,
		},
		Workflow: Workflow{
			MaxActivePipelines: defaultMaxActivePipelines,
		},
		Classifier: Classifier{
			TimeoutSeconds: defaultServiceTimeoutSeconds,
		},
		Generator: Generator{
			TimeoutSeconds: defaultServiceTimeoutSeconds,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
