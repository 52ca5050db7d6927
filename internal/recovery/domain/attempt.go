package domain

// AnswerPair is one submitted question/answer pair of a recovery attempt.
// Attempts are transient and never persisted.
type AnswerPair struct {
	Question string
	Answer   string
}

// RecoveryResult is the outcome of evaluating a recovery attempt against the
// stored question set. Correct, Required and FailedQuestions are diagnostic
// detail for the registrant's own audit tooling; a live recovery flow should
// expose only Accepted unless the integrator decides otherwise.
type RecoveryResult struct {
	Accepted bool
	Correct  int
	Required int

	// FailedQuestions lists the stored question prompts that were not
	// satisfied by the attempt. Submitted questions with no stored record
	// are included as well.
	FailedQuestions []string
}

// Redacted returns a copy with all diagnostic detail suppressed, carrying
// only the aggregate decision.
func (r RecoveryResult) Redacted() RecoveryResult {
	return RecoveryResult{Accepted: r.Accepted}
}
