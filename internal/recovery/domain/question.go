package domain

import "time"

// SecurityQuestion binds a question prompt to the stored hash of its
// registered answer. The raw answer is never persisted; AnswerHash is either
// a legacy salted SHA-256 string or an Argon2id PHC string.
type SecurityQuestion struct {
	ID         string // ULID
	Question   string // prompt shown to the registrant, matched byte-for-byte at recovery
	AnswerHash string // stored hash, format recognised by its shape
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuestionAnswer is a prompt plus its raw answer, supplied at registration.
// The answer exists only for the duration of the registration call.
type QuestionAnswer struct {
	Question string
	Answer   string
}
