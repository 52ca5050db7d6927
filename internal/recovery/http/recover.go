package http

import (
	"encoding/json"
	"net/http"

	"github.com/lockstead/recovery/internal/recovery/domain"
	"github.com/lockstead/recovery/internal/recovery/service"
	"github.com/lockstead/recovery/pkg/httpx"
	"github.com/lockstead/recovery/pkg/recoverysdk"
	"github.com/lockstead/recovery/pkg/slogx"
)

// VerifyHandler serves POST /v1/recovery/verify: a full set of
// question/answer pairs in, an accept/reject decision out.
type VerifyHandler struct {
	RecoveryService   *service.RecoveryService
	RevealDiagnostics bool
}

func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req recoverysdk.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, recoverysdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	pairs := make([]domain.AnswerPair, 0, len(req.Answers))
	for _, a := range req.Answers {
		pairs = append(pairs, domain.AnswerPair{
			Question: a.Question,
			Answer:   a.Answer,
		})
	}

	result, err := h.RecoveryService.VerifyRecovery(ctx, pairs)
	if err != nil {
		// "could not check" is reported as 503, never as a rejection
		log.Error("failed to evaluate recovery attempt", "err", err)
		recoverysdk.ErrStorageUnavailable.WriteError(w)
		return
	}

	if !h.RevealDiagnostics {
		result = result.Redacted()
	}

	log.Info("recovery attempt evaluated",
		"accepted", result.Accepted,
		"pairs", len(pairs),
	)

	httpx.WriteJSON(w, http.StatusOK, recoverysdk.VerifyResponse{
		Accepted:        result.Accepted,
		Correct:         result.Correct,
		Required:        result.Required,
		FailedQuestions: result.FailedQuestions,
	})
}
