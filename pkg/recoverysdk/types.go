// Package recoverysdk defines the request/response surface of the recovery
// service and a small HTTP client for integrators. The server handlers and
// the client share these types so the wire shape cannot drift.
package recoverysdk

// AnswerPair is one submitted question/answer pair of a recovery attempt.
type AnswerPair struct {
	// Question is the prompt text, matched byte-for-byte against the
	// registered question.
	Question string `json:"question"`

	// Answer is the raw candidate answer; the server normalizes it before
	// hashing.
	Answer string `json:"answer"`
}

// VerifyRequest is the body of POST /v1/recovery/verify.
type VerifyRequest struct {
	Answers []AnswerPair `json:"answers"`
}

// VerifyResponse is the outcome of a recovery attempt. The diagnostic fields
// are only populated when the server is configured to reveal them; a
// production deployment normally returns the bare accepted flag.
type VerifyResponse struct {
	Accepted bool `json:"accepted"`

	Correct         int      `json:"correct,omitempty"`
	Required        int      `json:"required,omitempty"`
	FailedQuestions []string `json:"failed_questions,omitempty"`
}

// Question is a registered question as exposed over the API. Stored hashes
// and salts are never serialized.
type Question struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	CreatedAt string `json:"created_at"` // RFC 3339
	UpdatedAt string `json:"updated_at"` // RFC 3339
}

// QuestionListResponse is the body of GET /v1/recovery/questions.
type QuestionListResponse struct {
	Questions []Question `json:"questions"`
}

// RegisterEntry is one question/answer pair to register.
type RegisterEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RegisterRequest is the body of PUT /v1/questions. The submitted set
// replaces the stored set atomically.
type RegisterRequest struct {
	Questions []RegisterEntry `json:"questions"`
}

// UpgradeRequest is the body of POST /v1/questions/upgrade: the registrant's
// confirmed answers, used to rewrite every stored hash with the modern
// scheme.
type UpgradeRequest struct {
	Answers []AnswerPair `json:"answers"`
}

// ErrorResponse is the standard error shape returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_request").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// HealthChecks reports the status of the service's critical dependencies.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

// HealthResponse is returned by the /livez and /readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
