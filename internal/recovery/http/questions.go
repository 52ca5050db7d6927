package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lockstead/recovery/internal/recovery/domain"
	"github.com/lockstead/recovery/internal/recovery/service"
	"github.com/lockstead/recovery/pkg/httpx"
	"github.com/lockstead/recovery/pkg/recoverysdk"
	"github.com/lockstead/recovery/pkg/slogx"
)

// QuestionListHandler serves GET /v1/recovery/questions. Only the prompts are
// exposed; stored hashes never leave the store.
type QuestionListHandler struct {
	QuestionService *service.QuestionService
}

func (h *QuestionListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	records, err := h.QuestionService.ListQuestions(ctx)
	if err != nil {
		log.Error("failed to list questions", "err", err)
		recoverysdk.ErrStorageUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, recoverysdk.QuestionListResponse{
		Questions: toAPIQuestions(records),
	})
}

// QuestionsHandler owns the registration endpoints: replacing the question
// set and upgrading stored hashes to the modern scheme.
type QuestionsHandler struct {
	QuestionService *service.QuestionService
}

// HandleReplace serves PUT /v1/questions. The submitted set replaces the
// stored set atomically; on validation failure nothing changes.
func (h *QuestionsHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req recoverysdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, recoverysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	entries := make([]domain.QuestionAnswer, 0, len(req.Questions))
	for _, q := range req.Questions {
		entries = append(entries, domain.QuestionAnswer{
			Question: q.Question,
			Answer:   q.Answer,
		})
	}

	records, err := h.QuestionService.RegisterQuestions(ctx, entries)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuestionSet):
			httpx.WriteJSON(w, http.StatusBadRequest, recoverysdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "At least one question is required",
			})
		case errors.Is(err, service.ErrBlankEntry):
			httpx.WriteJSON(w, http.StatusBadRequest, recoverysdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Questions and answers must be non-empty",
			})
		case errors.Is(err, service.ErrDuplicateQuestion):
			httpx.WriteJSON(w, http.StatusBadRequest, recoverysdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Question texts must be unique within the set",
			})
		default:
			log.Error("failed to register questions", "err", err)
			recoverysdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("question set replaced", "count", len(records))

	httpx.WriteJSON(w, http.StatusCreated, recoverysdk.QuestionListResponse{
		Questions: toAPIQuestions(records),
	})
}

// HandleUpgrade serves POST /v1/questions/upgrade. The registrant confirms
// their answers and every stored hash is rewritten with the modern scheme.
func (h *QuestionsHandler) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req recoverysdk.UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, recoverysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	confirmed := make([]domain.AnswerPair, 0, len(req.Answers))
	for _, a := range req.Answers {
		confirmed = append(confirmed, domain.AnswerPair{
			Question: a.Question,
			Answer:   a.Answer,
		})
	}

	if err := h.QuestionService.UpgradeToModern(ctx, confirmed); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuestionSet):
			httpx.WriteJSON(w, http.StatusBadRequest, recoverysdk.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "No questions are registered",
			})
		case errors.Is(err, service.ErrAnswersNotAccepted):
			recoverysdk.ErrAnswersRejected.WriteError(w)
		default:
			log.Error("failed to upgrade question set", "err", err)
			recoverysdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("question set upgraded to modern hash scheme")

	w.WriteHeader(http.StatusNoContent)
}

func toAPIQuestions(records []domain.SecurityQuestion) []recoverysdk.Question {
	out := make([]recoverysdk.Question, 0, len(records))
	for _, rec := range records {
		out = append(out, recoverysdk.Question{
			ID:        rec.ID,
			Question:  rec.Question,
			CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
