package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/HRehwald/PoolChat/internal/app"
	"github.com/HRehwald/PoolChat/internal/domain/types"
	"github.com/HRehwald/PoolChat/pkg/logger"
)

// AskDependencies defines what the ask handler needs.
type AskDependencies interface {
	Ask(ctx context.Context, question string) (types.Answer, error)
}

// AskHandler handles question requests.
type AskHandler struct {
	deps         AskDependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(deps AskDependencies, maxBodyBytes int64, log logger.Logger) *AskHandler {
	return &AskHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: log}
}

// askRequest is the POST /ask body.
type askRequest struct {
	Question string `json:"question"`
}

// HandleAsk handles POST /ask with a JSON body and GET /ask?q=... requests.
func (h *AskHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	const op = "api.ask"

	var question string
	switch r.Method {
	case http.MethodGet:
		question = r.URL.Query().Get("q")
	case http.MethodPost:
		var req askRequest
		body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		question = req.Question
	default:
		http.NotFound(w, r)
		return
	}

	if strings.TrimSpace(question) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, service.ErrEmptyQuestion))
		return
	}

	ans, err := h.deps.Ask(r.Context(), question)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ans)
	case errors.Is(err, service.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		h.logger.Error(r.Context(), "ask failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
