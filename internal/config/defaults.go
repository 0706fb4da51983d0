package config

const (
	defaultBaseURL        = "https://api.daily.co/v1"
	defaultRequestTimeout = 30
	defaultMaxRetries     = 3
	defaultInitialDelay   = 1
	defaultBackoffFactor  = 2.0
	defaultEntryDelay     = 2
	defaultPlanFile       = "transfer_plan.json"
	defaultCallerIDFile   = "unverified_caller_ids.json"
	defaultSuccessFile    = "transfer_success.json"
	defaultFailureFile    = "transfer_failures.json"
	defaultLogDir         = "~/.local/share/numport/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Daily: Daily{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Retry: Retry{
			MaxRetries:    defaultMaxRetries,
			InitialDelay:  defaultInitialDelay,
			BackoffFactor: defaultBackoffFactor,
		},
		Transfer: Transfer{
			EntryDelay: defaultEntryDelay,
		},
		Paths: Paths{
			PlanFile:     defaultPlanFile,
			CallerIDFile: defaultCallerIDFile,
			SuccessFile:  defaultSuccessFile,
			FailureFile:  defaultFailureFile,
			LogDir:       defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
