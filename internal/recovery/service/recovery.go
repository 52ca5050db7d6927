package service

import (
	"context"
	"fmt"

	"github.com/lockstead/recovery/internal/recovery/domain"
	"github.com/lockstead/recovery/internal/recovery/store"
	"github.com/lockstead/recovery/pkg/answerhash"
)

// RecoveryService decides whether a recovery attempt satisfies the stored
// question set. It is stateless across calls; the store is its only
// collaborator and is read-only from here.
type RecoveryService struct {
	Store store.Store
}

// VerifyRecovery evaluates a recovery attempt against the registered
// question records. A storage failure is returned as an error, distinct from
// a rejected attempt: "could not check" is never conflated with "checked and
// wrong".
func (s *RecoveryService) VerifyRecovery(ctx context.Context, pairs []domain.AnswerPair) (domain.RecoveryResult, error) {
	records, err := s.Store.Questions().ListQuestions(ctx)
	if err != nil {
		return domain.RecoveryResult{}, fmt.Errorf("failed to load question records: %w", err)
	}
	return Evaluate(pairs, records), nil
}

// Evaluate applies the recovery policy to an attempt. It is a pure decision
// function; retry loops and prompting are a UI concern, callers simply call
// again with a fresh attempt.
//
// Policy: all-or-nothing. Every stored record must be satisfied by exactly
// one submitted pair whose question text matches byte-for-byte (the question
// text itself is never normalized, only the answer is) and whose normalized
// answer verifies against the stored hash. A missing or extra pair rejects
// the attempt even if every present pair is individually correct.
//
// A record can be credited at most once, so duplicate pairs cannot inflate
// the correct count. Malformed stored hashes and pairs without a matching
// record count as incorrect; Evaluate never fails.
func Evaluate(pairs []domain.AnswerPair, records []domain.SecurityQuestion) domain.RecoveryResult {
	required := len(records)
	satisfied := make([]bool, len(records))

	correct := 0
	var failed []string

	for _, pair := range pairs {
		match := -1
		for i, rec := range records {
			if !satisfied[i] && rec.Question == pair.Question {
				match = i
				break
			}
		}
		if match == -1 {
			// No stored record for this question (or its record is already
			// credited). The pair cannot count towards acceptance.
			failed = append(failed, pair.Question)
			continue
		}

		if answerhash.Verify(answerhash.Normalize(pair.Answer), records[match].AnswerHash) {
			satisfied[match] = true
			correct++
		}
	}

	for i, rec := range records {
		if !satisfied[i] {
			failed = append(failed, rec.Question)
		}
	}

	return domain.RecoveryResult{
		Accepted:        correct == required && len(pairs) == required,
		Correct:         correct,
		Required:        required,
		FailedQuestions: dedupe(failed),
	}
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
