package models

import "time"

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds; zero when allowed
}

// ExceededResponse is the 429 body.
type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}
