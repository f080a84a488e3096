package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/HRehwald/PoolChat/internal/app"
	"github.com/HRehwald/PoolChat/internal/domain/types"
)

// TopicsDependencies defines what the topics handler needs.
type TopicsDependencies interface {
	Topics(ctx context.Context) (types.Topics, error)
}

// TopicsHandler handles topic listing requests.
type TopicsHandler struct {
	deps TopicsDependencies
}

// NewTopicsHandler creates a new topics handler.
func NewTopicsHandler(deps TopicsDependencies) *TopicsHandler {
	return &TopicsHandler{deps: deps}
}

// HandleTopics handles GET /topics requests.
func (h *TopicsHandler) HandleTopics(w http.ResponseWriter, r *http.Request) {
	const op = "api.topics"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	topics, err := h.deps.Topics(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotStarted) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, topics)
}
