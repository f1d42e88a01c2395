package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/shettydevesh/zenvestAi-backend/internal/analyzer"
	"github.com/shettydevesh/zenvestAi-backend/internal/api/middleware"
	"github.com/shettydevesh/zenvestAi-backend/internal/chat"
	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
	"github.com/shettydevesh/zenvestAi-backend/internal/mentor"
)

// MentorHandler handles the financial-mentor endpoints.
type MentorHandler struct {
	service    *mentor.Service
	sessions   mentor.SessionStore
	normalizer *fidata.Normalizer
	log        zerolog.Logger
}

// NewMentorHandler creates a new mentor handler. sessions may be nil when
// session persistence is disabled.
func NewMentorHandler(service *mentor.Service, sessions mentor.SessionStore, normalizer *fidata.Normalizer, log zerolog.Logger) *MentorHandler {
	return &MentorHandler{
		service:    service,
		sessions:   sessions,
		normalizer: normalizer,
		log:        log,
	}
}

// Chat handles POST /api/v1/mentor/chat
func (h *MentorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Chat(ctx, userID, middleware.GetRequestID(ctx), req.Message)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Mentor chat failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Mentor chat failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// ListSessions handles GET /api/v1/mentor/sessions
func (h *MentorHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if h.sessions == nil {
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"sessions": []*mentor.Session{},
			"count":    0,
		})
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	sessions, err := h.sessions.ListMentorSessions(ctx, userID, limit)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list mentor sessions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []*mentor.Session{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// Analysis handles GET /api/v1/mentor/analysis
//
// It returns the analysis summary for the user's current snapshot without
// invoking the model. An optional as_of=YYYY-MM-DD query parameter bounds
// the transaction window.
func (h *MentorHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	asOf := r.URL.Query().Get("as_of")
	if asOf != "" {
		if _, err := time.Parse("2006-01-02", asOf); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid as_of format, expected YYYY-MM-DD")
			return
		}
	}

	dataset := h.normalizer.Build(ctx, userID, asOf)
	summary := analyzer.Analyze(dataset)

	middleware.WriteJSON(w, http.StatusOK, summary)
}

// PersonaHandler handles the persona-chat endpoints.
type PersonaHandler struct {
	service *chat.Service
	store   *chat.ConversationStore
	log     zerolog.Logger
}

// NewPersonaHandler creates a new persona handler.
func NewPersonaHandler(service *chat.Service, store *chat.ConversationStore, log zerolog.Logger) *PersonaHandler {
	return &PersonaHandler{
		service: service,
		store:   store,
		log:     log,
	}
}

// Chat handles POST /api/v1/persona/chat
func (h *PersonaHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req struct {
		Message        string `json:"message"`
		ConversationID string `json:"conversation_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	resp, err := h.service.Send(ctx, userID, req.ConversationID, req.Message)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Persona chat failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Persona chat failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// ListConversations handles GET /api/v1/persona/conversations
func (h *PersonaHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	includeArchived := r.URL.Query().Get("include_archived") == "true"

	conversations, err := h.store.ListByUser(ctx, userID, includeArchived)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list conversations")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list conversations")
		return
	}
	if conversations == nil {
		conversations = []*chat.Conversation{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": conversations,
		"count":         len(conversations),
	})
}
