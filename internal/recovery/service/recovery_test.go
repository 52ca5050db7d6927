package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/lockstead/recovery/internal/recovery/domain"
	"github.com/lockstead/recovery/internal/recovery/service"
	"github.com/lockstead/recovery/internal/recovery/store/drivers/sqlite"
	"github.com/lockstead/recovery/pkg/answerhash"
	"github.com/lockstead/recovery/pkg/idx"
	"github.com/stretchr/testify/require"
)

func legacyRecord(t *testing.T, question, answer string, at time.Time) domain.SecurityQuestion {
	t.Helper()
	salt, err := answerhash.GenerateSalt()
	require.NoError(t, err)
	return domain.SecurityQuestion{
		ID:         idx.NewAt(at).String(),
		Question:   question,
		AnswerHash: answerhash.HashLegacy(answerhash.Normalize(answer), salt),
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func modernRecord(t *testing.T, question, answer string, at time.Time) domain.SecurityQuestion {
	t.Helper()
	hash, err := answerhash.Hash(answerhash.Normalize(answer))
	require.NoError(t, err)
	return domain.SecurityQuestion{
		ID:         idx.NewAt(at).String(),
		Question:   question,
		AnswerHash: hash,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func testRecords(t *testing.T) []domain.SecurityQuestion {
	t.Helper()
	base := time.Now().UTC()
	return []domain.SecurityQuestion{
		legacyRecord(t, "What is the name of your first pet?", "gismo", base),
		legacyRecord(t, "What is your mother's maiden name?", "lister", base.Add(time.Second)),
		modernRecord(t, "What is the name of the street you grew up on?", "westminister", base.Add(2*time.Second)),
	}
}

func TestEvaluateAcceptsFullyCorrectAttempt(t *testing.T) {
	t.Parallel()

	records := testRecords(t)
	pairs := []domain.AnswerPair{
		{Question: "What is the name of your first pet?", Answer: "gismo"},
		{Question: "What is your mother's maiden name?", Answer: "lister"},
		{Question: "What is the name of the street you grew up on?", Answer: "westminister"},
	}

	result := service.Evaluate(pairs, records)
	require.True(t, result.Accepted)
	require.Equal(t, 3, result.Correct)
	require.Equal(t, 3, result.Required)
	require.Empty(t, result.FailedQuestions)
}

func TestEvaluateNormalizesAnswersNotQuestions(t *testing.T) {
	t.Parallel()

	records := testRecords(t)

	t.Run("answer case and whitespace are insignificant", func(t *testing.T) {
		pairs := []domain.AnswerPair{
			{Question: "What is the name of your first pet?", Answer: "  GiSmO "},
			{Question: "What is your mother's maiden name?", Answer: "Lister "},
			{Question: "What is the name of the street you grew up on?", Answer: "WESTMINISTER"},
		}
		require.True(t, service.Evaluate(pairs, records).Accepted)
	})

	t.Run("question text is matched case-sensitively", func(t *testing.T) {
		pairs := []domain.AnswerPair{
			{Question: "what is the name of your first pet?", Answer: "gismo"}, // wrong case
			{Question: "What is your mother's maiden name?", Answer: "lister"},
			{Question: "What is the name of the street you grew up on?", Answer: "westminister"},
		}
		result := service.Evaluate(pairs, records)
		require.False(t, result.Accepted)
		require.Equal(t, 2, result.Correct)
		require.Contains(t, result.FailedQuestions, "what is the name of your first pet?")
		require.Contains(t, result.FailedQuestions, "What is the name of your first pet?")
	})
}

func TestEvaluateAllOrNothing(t *testing.T) {
	t.Parallel()

	records := testRecords(t)

	t.Run("one wrong answer rejects", func(t *testing.T) {
		pairs := []domain.AnswerPair{
			{Question: "What is the name of your first pet?", Answer: "gismo"},
			{Question: "What is your mother's maiden name?", Answer: "lister"},
			{Question: "What is the name of the street you grew up on?", Answer: "gizmo"},
		}
		result := service.Evaluate(pairs, records)
		require.False(t, result.Accepted)
		require.Equal(t, 2, result.Correct)
		require.Equal(t, []string{"What is the name of the street you grew up on?"}, result.FailedQuestions)
	})

	t.Run("missing pair rejects even if submitted pairs are correct", func(t *testing.T) {
		pairs := []domain.AnswerPair{
			{Question: "What is the name of your first pet?", Answer: "gismo"},
			{Question: "What is your mother's maiden name?", Answer: "lister"},
		}
		result := service.Evaluate(pairs, records)
		require.False(t, result.Accepted)
		require.Equal(t, 2, result.Correct)
	})

	t.Run("extra pair rejects", func(t *testing.T) {
		pairs := []domain.AnswerPair{
			{Question: "What is the name of your first pet?", Answer: "gismo"},
			{Question: "What is your mother's maiden name?", Answer: "lister"},
			{Question: "What is the name of the street you grew up on?", Answer: "westminister"},
			{Question: "Unregistered question?", Answer: "whatever"},
		}
		result := service.Evaluate(pairs, records)
		require.False(t, result.Accepted)
		require.Equal(t, 3, result.Correct)
		require.Contains(t, result.FailedQuestions, "Unregistered question?")
	})

	t.Run("duplicate pairs cannot inflate the correct count", func(t *testing.T) {
		records := records[:2]
		pairs := []domain.AnswerPair{
			{Question: "What is the name of your first pet?", Answer: "gismo"},
			{Question: "What is the name of your first pet?", Answer: "gismo"},
		}
		result := service.Evaluate(pairs, records)
		require.False(t, result.Accepted)
		require.Equal(t, 1, result.Correct)
	})
}

func TestEvaluateMixedFormatsVerifyIndependently(t *testing.T) {
	t.Parallel()

	// One legacy and one modern record: each verifies under its own
	// format's rule, with no cross-format fallback.
	base := time.Now().UTC()
	records := []domain.SecurityQuestion{
		legacyRecord(t, "Legacy question?", "alpha", base),
		modernRecord(t, "Modern question?", "bravo", base.Add(time.Second)),
	}

	accepted := service.Evaluate([]domain.AnswerPair{
		{Question: "Legacy question?", Answer: "alpha"},
		{Question: "Modern question?", Answer: "bravo"},
	}, records)
	require.True(t, accepted.Accepted)

	swapped := service.Evaluate([]domain.AnswerPair{
		{Question: "Legacy question?", Answer: "bravo"},
		{Question: "Modern question?", Answer: "alpha"},
	}, records)
	require.False(t, swapped.Accepted)
	require.Equal(t, 0, swapped.Correct)
}

func TestEvaluateFailsClosedOnMalformedStoredHash(t *testing.T) {
	t.Parallel()

	base := time.Now().UTC()
	records := []domain.SecurityQuestion{
		{
			ID:         idx.NewAt(base).String(),
			Question:   "Broken record?",
			AnswerHash: "not-a-valid-hash",
			CreatedAt:  base,
			UpdatedAt:  base,
		},
	}

	// Malformed stored data resolves to "does not verify", never a panic.
	result := service.Evaluate([]domain.AnswerPair{{Question: "Broken record?", Answer: "anything"}}, records)
	require.False(t, result.Accepted)
	require.Equal(t, 0, result.Correct)
	require.Equal(t, []string{"Broken record?"}, result.FailedQuestions)
}

func TestEvaluateEmptyRecordSet(t *testing.T) {
	t.Parallel()

	// Zero records and zero pairs: vacuously accepted (correct == required
	// == 0). An attempt against an empty set with any pair is rejected.
	require.True(t, service.Evaluate(nil, nil).Accepted)

	result := service.Evaluate([]domain.AnswerPair{{Question: "Q?", Answer: "a"}}, nil)
	require.False(t, result.Accepted)
}

func TestRedactedSuppressesDiagnostics(t *testing.T) {
	t.Parallel()

	records := testRecords(t)
	result := service.Evaluate([]domain.AnswerPair{
		{Question: "What is the name of your first pet?", Answer: "wrong"},
	}, records)

	redacted := result.Redacted()
	require.False(t, redacted.Accepted)
	require.Zero(t, redacted.Correct)
	require.Zero(t, redacted.Required)
	require.Empty(t, redacted.FailedQuestions)
}

func TestVerifyRecoveryReadsFromStore(t *testing.T) {
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	questions := &service.QuestionService{Store: st}
	_, err = questions.RegisterQuestions(ctx, []domain.QuestionAnswer{
		{Question: "What is the name of your first pet?", Answer: "Gismo"},
		{Question: "What is your mother's maiden name?", Answer: "Lister"},
	})
	require.NoError(t, err)

	recovery := &service.RecoveryService{Store: st}

	accepted, err := recovery.VerifyRecovery(ctx, []domain.AnswerPair{
		{Question: "What is the name of your first pet?", Answer: " gismo "},
		{Question: "What is your mother's maiden name?", Answer: "LISTER"},
	})
	require.NoError(t, err)
	require.True(t, accepted.Accepted)

	rejected, err := recovery.VerifyRecovery(ctx, []domain.AnswerPair{
		{Question: "What is the name of your first pet?", Answer: "gizmo"},
		{Question: "What is your mother's maiden name?", Answer: "lister"},
	})
	require.NoError(t, err)
	require.False(t, rejected.Accepted)
	require.Equal(t, 1, rejected.Correct)
}
