package httptransport

import (
	"context"
	"encoding/json"
	"net/http"

	"truedial/internal/contact"
	platformmw "truedial/internal/platform/middleware"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type ContactService interface {
	Create(ctx context.Context, req contact.CreateRequest) (contact.Contact, error)
}

type ContactHandler struct {
	contacts ContactService
}

type createContactRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type contactResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

func (h *ContactHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	ownerID, err := id.ParseUserID(platformmw.GetUserID(r.Context()))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid account"))
		return
	}

	c, err := h.contacts.Create(r.Context(), contact.CreateRequest{
		OwnerID:     ownerID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusCreated, contactResponse{
		ID:          c.ID.String(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
	})
}
