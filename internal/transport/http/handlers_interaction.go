package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"truedial/internal/interaction"
	platformmw "truedial/internal/platform/middleware"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type InteractionService interface {
	Create(ctx context.Context, req interaction.CreateRequest) (interaction.Interaction, error)
	Recent(ctx context.Context, userID id.UserID, typeFilter string, page, pageSize int) (interaction.RecentPage, error)
	TopContacts(ctx context.Context, userID id.UserID, limit int) ([]interaction.TopContact, error)
}

type InteractionHandler struct {
	interactions InteractionService
}

type createInteractionRequest struct {
	ReceiverPhone string         `json:"receiver_phone"`
	Type          string         `json:"interaction_type"`
	Metadata      map[string]any `json:"metadata"`
}

type interactionResponse struct {
	ID            string         `json:"id"`
	ReceiverPhone string         `json:"receiver_phone"`
	Type          string         `json:"interaction_type"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func toInteractionResponse(in interaction.Interaction) interactionResponse {
	return interactionResponse{
		ID:            in.ID.String(),
		ReceiverPhone: in.ReceiverPhone,
		Type:          string(in.Type),
		Metadata:      in.Metadata,
		CreatedAt:     in.CreatedAt,
	}
}

func (h *InteractionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	initiatorID, err := id.ParseUserID(platformmw.GetUserID(r.Context()))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid account"))
		return
	}

	in, err := h.interactions.Create(r.Context(), interaction.CreateRequest{
		InitiatorID:   initiatorID,
		ReceiverPhone: req.ReceiverPhone,
		Type:          interaction.Type(req.Type),
		Metadata:      req.Metadata,
		UserAgent:     r.UserAgent(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusCreated, toInteractionResponse(in))
}

type recentResponse struct {
	Interactions []interactionResponse `json:"interactions"`
	TotalCount   int                   `json:"total_count"`
}

func (h *InteractionHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(platformmw.GetUserID(r.Context()))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid account"))
		return
	}

	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, err)
		return
	}
	pageSize, err := queryInt(r, "page_size", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.interactions.Recent(r.Context(), userID, r.URL.Query().Get("type"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	out := recentResponse{
		Interactions: make([]interactionResponse, 0, len(result.Interactions)),
		TotalCount:   result.TotalCount,
	}
	for _, in := range result.Interactions {
		out.Interactions = append(out.Interactions, toInteractionResponse(in))
	}
	respond(w, http.StatusOK, out)
}

func (h *InteractionHandler) handleTop(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(platformmw.GetUserID(r.Context()))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid account"))
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	top, err := h.interactions.TopContacts(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, top)
}
