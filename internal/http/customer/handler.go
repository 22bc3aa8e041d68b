package customer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/customer"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCustomerRequest struct {
	Name           string          `json:"name"`
	PrimaryPhone   string          `json:"primary_phone"`
	SecondaryPhone string          `json:"secondary_phone"`
	Address        string          `json:"address"`
	QuarterID      uuid.UUID       `json:"quarter_id"`
	PlanID         uuid.UUID       `json:"plan_id"`
	ONUSerial      string          `json:"onu_serial"`
	DNSN           string          `json:"dnsn"`
	GPSCoords      string          `json:"gps_coords"`
	InstallDate    time.Time       `json:"install_date"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	Status         customer.Status `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), customer.CreateParams{
		Name:           req.Name,
		PrimaryPhone:   req.PrimaryPhone,
		SecondaryPhone: req.SecondaryPhone,
		Address:        req.Address,
		QuarterID:      req.QuarterID,
		PlanID:         req.PlanID,
		ONUSerial:      req.ONUSerial,
		DNSN:           req.DNSN,
		GPSCoords:      req.GPSCoords,
		InstallDate:    req.InstallDate,
		ExpiryDate:     req.ExpiryDate,
		Status:         req.Status,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(customers)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateCustomerRequest struct {
	Name           *string          `json:"name,omitempty"`
	PrimaryPhone   *string          `json:"primary_phone,omitempty"`
	SecondaryPhone *string          `json:"secondary_phone,omitempty"`
	Address        *string          `json:"address,omitempty"`
	QuarterID      *uuid.UUID       `json:"quarter_id,omitempty"`
	PlanID         *uuid.UUID       `json:"plan_id,omitempty"`
	ONUSerial      *string          `json:"onu_serial,omitempty"`
	DNSN           *string          `json:"dnsn,omitempty"`
	GPSCoords      *string          `json:"gps_coords,omitempty"`
	InstallDate    *time.Time       `json:"install_date,omitempty"`
	ExpiryDate     *time.Time       `json:"expiry_date,omitempty"`
	Status         *customer.Status `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.PrimaryPhone != nil {
		c.PrimaryPhone = *req.PrimaryPhone
	}

	if req.SecondaryPhone != nil {
		c.SecondaryPhone = *req.SecondaryPhone
	}

	if req.Address != nil {
		c.Address = *req.Address
	}

	if req.QuarterID != nil {
		c.QuarterID = *req.QuarterID
	}

	if req.PlanID != nil {
		c.PlanID = *req.PlanID
	}

	if req.ONUSerial != nil {
		c.ONUSerial = *req.ONUSerial
	}

	if req.DNSN != nil {
		c.DNSN = *req.DNSN
	}

	if req.GPSCoords != nil {
		c.GPSCoords = *req.GPSCoords
	}

	if req.InstallDate != nil {
		c.InstallDate = *req.InstallDate
	}

	if req.ExpiryDate != nil {
		c.ExpiryDate = req.ExpiryDate
	}

	if req.Status != nil {
		c.Status = *req.Status
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
