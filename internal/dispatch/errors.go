package dispatch

import "github.com/ayoisaiah/pagetime/internal/apperr"

var (
	errInvalidSummary = &apperr.Error{
		Message: "refusing to deliver an invalid summary",
	}
	errUnexpectedStatus = &apperr.Error{
		Message: "backend responded with status %d",
	}
	errRejected = &apperr.Error{
		Message: "backend rejected the summary with status %d",
	}
	errRequestFailed = &apperr.Error{
		Message: "request to %s failed",
	}
	errNoOutbox = &apperr.Error{
		Message: "no outbox is configured",
	}
)
