package app

import "github.com/ayoisaiah/pagetime/internal/apperr"

var (
	errInvalidBook = &apperr.Error{
		Message: "--book must be a positive identifier, got %d",
	}

	errInvalidRate = &apperr.Error{
		Message: "--rate must be between %v and %v, got %v",
	}

	errSessionCmd = &apperr.Error{
		Message: "unable to parse session_cmd option",
	}

	errServe = &apperr.Error{
		Message: "development backend stopped unexpectedly",
	}
)
