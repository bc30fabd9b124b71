package httptransport

import (
	"context"
	"net/http"

	"truedial/internal/dashboard"
	platformmw "truedial/internal/platform/middleware"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type DashboardService interface {
	Summarize(ctx context.Context, userID id.UserID) (dashboard.Summary, error)
}

type DashboardHandler struct {
	dashboard DashboardService
}

func (h *DashboardHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(platformmw.GetUserID(r.Context()))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid account"))
		return
	}

	summary, err := h.dashboard.Summarize(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, summary)
}
