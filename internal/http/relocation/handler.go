package relocation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/relocation"
)

type Handler struct {
	svc *relocation.Service
}

func NewHandler(svc *relocation.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{customerID}", h.relocate)
	r.Get("/history/all", h.history)
	r.Get("/history/{customerID}", h.customerHistory)
}

type relocateRequest struct {
	NewAddress   string    `json:"new_address"`
	NewQuarterID uuid.UUID `json:"new_quarter_id"`
	NewDNSN      string    `json:"new_dnsn"`
	NewGPS       string    `json:"new_gps"`
	Remark       string    `json:"remark"`
}

type recordResponse struct {
	ID             uuid.UUID `json:"id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	CustomerCode   string    `json:"customer_code,omitempty"`
	CustomerName   string    `json:"customer_name,omitempty"`
	OldAddress     string    `json:"old_address"`
	OldQuarterID   uuid.UUID `json:"old_quarter_id"`
	OldQuarterName string    `json:"old_quarter_name,omitempty"`
	OldDNSN        string    `json:"old_dnsn,omitempty"`
	OldGPS         string    `json:"old_gps,omitempty"`
	NewAddress     string    `json:"new_address"`
	NewQuarterID   uuid.UUID `json:"new_quarter_id"`
	NewQuarterName string    `json:"new_quarter_name,omitempty"`
	NewDNSN        string    `json:"new_dnsn,omitempty"`
	NewGPS         string    `json:"new_gps,omitempty"`
	Remark         string    `json:"remark,omitempty"`
	MovedAt        time.Time `json:"moved_at"`
}

func toResponse(rec *relocation.Record) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		CustomerID:     rec.CustomerID,
		CustomerCode:   rec.CustomerCode,
		CustomerName:   rec.CustomerName,
		OldAddress:     rec.OldAddress,
		OldQuarterID:   rec.OldQuarterID,
		OldQuarterName: rec.OldQuarterName,
		OldDNSN:        rec.OldDNSN,
		OldGPS:         rec.OldGPS,
		NewAddress:     rec.NewAddress,
		NewQuarterID:   rec.NewQuarterID,
		NewQuarterName: rec.NewQuarterName,
		NewDNSN:        rec.NewDNSN,
		NewGPS:         rec.NewGPS,
		Remark:         rec.Remark,
		MovedAt:        rec.MovedAt,
	}
}

func toResponseList(records []*relocation.Record) []recordResponse {
	resp := make([]recordResponse, len(records))
	for i, rec := range records {
		resp[i] = toResponse(rec)
	}

	return resp
}

func (h *Handler) relocate(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "customerID"))
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	var req relocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Relocate(r.Context(), customerID, relocation.Params{
		NewAddress:   req.NewAddress,
		NewQuarterID: req.NewQuarterID,
		NewDNSN:      req.NewDNSN,
		NewGPS:       req.NewGPS,
		Remark:       req.Remark,
	})
	if err != nil {
		switch {
		case errors.Is(err, relocation.ErrMissingLocation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, relocation.ErrCustomerNotFound):
			http.Error(w, "customer not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.History(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(records)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) customerHistory(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "customerID"))
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	records, err := h.svc.CustomerHistory(r.Context(), customerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(records)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
