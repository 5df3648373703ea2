package config

import "github.com/ayoisaiah/pagetime/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid value for --%s: %q",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s must be between %v and %v, got %v",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "%s must be greater than zero",
	}

	errInvalidBackendURL = &apperr.Error{
		Message: "backend url must be an absolute http or https URL, got %q",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q (use debug, info, warn or error)",
	}
)
