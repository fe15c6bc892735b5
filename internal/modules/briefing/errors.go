package briefing

import "errors"

var (
	// ErrInvalidRequest marks bad caller input; mapped to 400.
	ErrInvalidRequest = errors.New("topics must be a non-empty list of known topic ids")
	// ErrNoAPIKey means the external service credential is not configured;
	// operator-fixable, mapped to 500.
	ErrNoAPIKey = errors.New("ANTHROPIC_API_KEY is not configured on the server")
)
