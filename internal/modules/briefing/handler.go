package briefing

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsbrief/core/internal/models"
	"github.com/newsbrief/core/internal/pkg/response"
	"go.uber.org/zap"
)

type briefingRequest struct {
	Topics []string `json:"topics"`
}

type followupRequest struct {
	Message  string `json:"message"`
	Question string `json:"question"`
	Topic    string `json:"topic"`
}

// BriefingResponse is the wire shape of a generated or cached briefing.
type BriefingResponse struct {
	Messages []models.Message `json:"messages"`
	Sources  []models.Source  `json:"sources"`
	Cached   bool             `json:"cached"`
}

// FollowupResponse is the wire shape of a follow-up exchange.
type FollowupResponse struct {
	Messages []models.Message `json:"messages"`
}

// Handler exposes the briefing endpoints over gin.
type Handler struct {
	orch *Orchestrator
	log  *zap.Logger
}

func NewHandler(orch *Orchestrator, log *zap.Logger) *Handler {
	return &Handler{orch: orch, log: log.Named("http")}
}

// Create handles POST /api/briefings.
func (h *Handler) Create(c *gin.Context) {
	var req briefingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	res, err := h.orch.Generate(c.Request.Context(), req.Topics)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, BriefingResponse{
		Messages: res.Messages,
		Sources:  res.Sources,
		Cached:   res.Cached,
	})
}

// FollowUp handles POST /api/followup.
func (h *Handler) FollowUp(c *gin.Context) {
	var req followupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if req.Message == "" || req.Question == "" {
		response.BadRequest(c, "message and question are required")
		return
	}

	messages, err := h.orch.FollowUp(c.Request.Context(), req.Message, req.Question, req.Topic)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, FollowupResponse{Messages: messages})
}

// PrefetchStatus handles GET /api/prefetch-status.
func (h *Handler) PrefetchStatus(c *gin.Context) {
	date, topics, err := h.orch.PrefetchStatus(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, gin.H{"date": date, "topics": topics})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrNoAPIKey):
		response.InternalError(c, err)
	default:
		h.log.Error("briefing request failed", zap.Error(err))
		response.BadGateway(c, errors.New("upstream generation failed"))
	}
}
