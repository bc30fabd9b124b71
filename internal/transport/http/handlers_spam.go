package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	platformmw "truedial/internal/platform/middleware"
	"truedial/internal/platform/metrics"
	"truedial/internal/report"
	"truedial/internal/spam"
	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

type ReportService interface {
	Create(ctx context.Context, req report.CreateRequest) (report.Report, error)
}

type SpamService interface {
	Aggregate(ctx context.Context, filter spam.Filter) ([]spam.Aggregate, error)
}

type SpamHandler struct {
	reports ReportService
	spam    SpamService
	metrics *metrics.Metrics
}

type reportSpamRequest struct {
	PhoneNumber string `json:"phone_number"`
	Description string `json:"description"`
}

type reportSpamResponse struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *SpamHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportSpamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}

	reporterID, err := id.ParseUserID(platformmw.GetUserID(r.Context()))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid account"))
		return
	}

	created, err := h.reports.Create(r.Context(), report.CreateRequest{
		ReporterID:  reporterID,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementSpamReports()
	}
	respond(w, http.StatusCreated, reportSpamResponse{
		ID:          created.ID.String(),
		PhoneNumber: created.PhoneNumber,
		Description: created.Description,
		CreatedAt:   created.CreatedAt,
	})
}

func (h *SpamHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	filter := spam.Filter{PhoneNumber: r.URL.Query().Get("phone_number")}

	start, err := queryDate(r, "start_date")
	if err != nil {
		writeError(w, err)
		return
	}
	filter.StartDate = start

	end, err := queryDate(r, "end_date")
	if err != nil {
		writeError(w, err)
		return
	}
	filter.EndDate = end

	if raw := r.URL.Query().Get("min_reports"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeInvalidCount, "invalid min_reports, must be an integer"))
			return
		}
		filter.MinReports = &n
	}

	stats, err := h.spam.Aggregate(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, stats)
}

// queryDate parses an ISO date (YYYY-MM-DD) query parameter.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, dErrors.Newf(dErrors.CodeInvalidDateRange, "invalid %s format, use YYYY-MM-DD", name)
	}
	return &t, nil
}
