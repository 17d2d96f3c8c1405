package config

const (
	defaultRobotBaseURL     = "http://127.0.0.1:31950"
	defaultAPIVersion       = "*"
	defaultTimeoutSeconds   = 30
	defaultStateDir         = "~/.local/share/otctl"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultWaitUntilDone    = true
	defaultJournalEnabled   = true
	defaultCommandTimeoutMS = 0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Robot: Robot{
			BaseURL:        defaultRobotBaseURL,
			APIVersion:     defaultAPIVersion,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Runs: Runs{
			WaitUntilComplete: defaultWaitUntilDone,
			CommandTimeoutMS:  defaultCommandTimeoutMS,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
