package dialogue

import "errors"

// Parse-stage failure reasons. All of them surface to HTTP callers as an
// upstream failure; the server does not retry model output on its own.
var (
	// ErrNoJSONArray means the response text contains no [...] span.
	ErrNoJSONArray = errors.New("no JSON array in model response")
	// ErrMalformedPayload means the array span did not decode, even after the
	// trailing-comma repair pass.
	ErrMalformedPayload = errors.New("malformed JSON payload in model response")
	// ErrTooFewMessages means fewer than the minimum messages survived
	// filtering.
	ErrTooFewMessages = errors.New("too few valid messages in model response")
)
