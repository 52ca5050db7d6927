package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lockstead/recovery/internal/recovery/domain"
	"github.com/lockstead/recovery/internal/recovery/store"
	"github.com/lockstead/recovery/pkg/answerhash"
	"github.com/lockstead/recovery/pkg/idx"
)

var (
	ErrEmptyQuestionSet   = errors.New("question set must not be empty")
	ErrDuplicateQuestion  = errors.New("duplicate question text in set")
	ErrBlankEntry         = errors.New("question and answer must be non-empty")
	ErrAnswersNotAccepted = errors.New("confirmed answers do not satisfy the stored records")
)

// QuestionService owns registration and re-registration of security
// questions. All writes go through the modern hash scheme; legacy hashes are
// only ever read.
type QuestionService struct {
	Store store.Store
}

// ListQuestions returns the registered question records in their stable
// presentation order (created_at ascending).
func (s *QuestionService) ListQuestions(ctx context.Context) ([]domain.SecurityQuestion, error) {
	return s.Store.Questions().ListQuestions(ctx)
}

// RegisterQuestions replaces the entire question set atomically. Each answer
// is normalized and hashed with the modern scheme, and every freshly written
// hash is verified against its plaintext before the transaction commits, so
// a hashing defect can never leave behind an unrecoverable record set.
func (s *QuestionService) RegisterQuestions(ctx context.Context, entries []domain.QuestionAnswer) ([]domain.SecurityQuestion, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	seen := make(map[string]struct{}, len(entries))
	records := make([]domain.SecurityQuestion, 0, len(entries))
	now := time.Now().UTC()

	for _, e := range entries {
		question := strings.TrimSpace(e.Question)
		normalized := answerhash.Normalize(e.Answer)
		if question == "" || normalized == "" {
			return nil, ErrBlankEntry
		}
		if _, dup := seen[question]; dup {
			// Matching at recovery time is by exact question text; two
			// records with the same text would shadow each other.
			return nil, fmt.Errorf("%w: %q", ErrDuplicateQuestion, question)
		}
		seen[question] = struct{}{}

		hash, err := answerhash.Hash(normalized)
		if err != nil {
			return nil, fmt.Errorf("failed to hash answer: %w", err)
		}
		if !answerhash.Verify(normalized, hash) {
			return nil, fmt.Errorf("fresh hash failed self-verification for question %q", question)
		}

		records = append(records, domain.SecurityQuestion{
			ID:         idx.New().String(),
			Question:   question,
			AnswerHash: hash,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		// Keep created_at strictly increasing so the presentation order
		// matches registration order even within one millisecond.
		now = now.Add(time.Millisecond)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Questions().DeleteAllQuestions(ctx); err != nil {
			return fmt.Errorf("failed to clear previous question set: %w", err)
		}
		for _, rec := range records {
			if err := tx.Questions().CreateQuestion(ctx, rec); err != nil {
				return fmt.Errorf("failed to store question %q: %w", rec.Question, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ReRegisterAnswer resets the answer of a single question (administrative
// reset). The stored hash is replaced with a modern one; this is the only
// path that mutates an existing record's hash.
func (s *QuestionService) ReRegisterAnswer(ctx context.Context, id string, answer string) error {
	normalized := answerhash.Normalize(answer)
	if normalized == "" {
		return ErrBlankEntry
	}

	if _, err := s.Store.Questions().GetQuestionByID(ctx, id); err != nil {
		return err
	}

	hash, err := answerhash.Hash(normalized)
	if err != nil {
		return fmt.Errorf("failed to hash answer: %w", err)
	}
	if !answerhash.Verify(normalized, hash) {
		return errors.New("fresh hash failed self-verification")
	}

	return s.Store.Questions().UpdateAnswerHash(ctx, id, hash)
}

// UpgradeToModern migrates every stored record to the modern scheme, given
// the registrant's confirmed answers. The confirmed answers must fully
// satisfy the current records under the recovery policy first; the rewrite
// then happens in one transaction so the set is never partially migrated.
// Records already in the modern format are re-hashed along with the rest.
func (s *QuestionService) UpgradeToModern(ctx context.Context, confirmed []domain.AnswerPair) error {
	records, err := s.Store.Questions().ListQuestions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load question records: %w", err)
	}
	if len(records) == 0 {
		return ErrEmptyQuestionSet
	}

	result := Evaluate(confirmed, records)
	if !result.Accepted {
		return ErrAnswersNotAccepted
	}

	// Index confirmed answers by question text; Evaluate already proved the
	// mapping is one-to-one.
	byQuestion := make(map[string]string, len(confirmed))
	for _, pair := range confirmed {
		byQuestion[pair.Question] = answerhash.Normalize(pair.Answer)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, rec := range records {
			normalized := byQuestion[rec.Question]
			hash, err := answerhash.Hash(normalized)
			if err != nil {
				return fmt.Errorf("failed to hash answer for %q: %w", rec.Question, err)
			}
			if !answerhash.Verify(normalized, hash) {
				return fmt.Errorf("fresh hash failed self-verification for question %q", rec.Question)
			}
			if err := tx.Questions().UpdateAnswerHash(ctx, rec.ID, hash); err != nil {
				return fmt.Errorf("failed to update hash for %q: %w", rec.Question, err)
			}
		}
		return nil
	})
}
