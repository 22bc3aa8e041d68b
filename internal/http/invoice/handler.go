package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/customer"
	"github.com/zinminlatt/ispbill/internal/invoice"
)

type Handler struct {
	svc     *invoice.Service
	custSvc *customer.Service
}

func NewHandler(svc *invoice.Service, custSvc *customer.Service) *Handler {
	return &Handler{svc: svc, custSvc: custSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/pdf", h.pdf)
}

type lineItemDTO struct {
	Description  string     `json:"description"`
	PeriodStart  *time.Time `json:"period_start,omitempty"`
	PeriodEnd    *time.Time `json:"period_end,omitempty"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unit_price"`
	ItemDiscount float64    `json:"item_discount"`
}

type saveInvoiceRequest struct {
	CustomerID     uuid.UUID      `json:"customer_id"`
	Date           time.Time      `json:"date"`
	DiscountAmount float64        `json:"discount_amount"`
	Status         invoice.Status `json:"status"`
	Remark         string         `json:"remark"`
	Items          []lineItemDTO  `json:"items"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req saveInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft := invoice.NewDraft()

	inv, err := h.submit(w, r, draft, req)
	if err != nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req saveInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	draft, err := invoice.EditDraft(existing)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	inv, err := h.submit(w, r, draft, req)
	if err != nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// submit fills the draft from the request and persists it. The error
// response has already been written when a non-nil error comes back.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, draft *invoice.Draft, req saveInvoiceRequest) (*invoice.Invoice, error) {
	if len(req.Items) == 0 {
		http.Error(w, "invoice needs at least one item", http.StatusBadRequest)
		return nil, invoice.ErrMinimumItems
	}

	cust, err := h.custSvc.Get(r.Context(), req.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusBadRequest)
			return nil, err
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, err
	}

	draft.Customer = &invoice.CustomerRef{ID: cust.ID, Code: cust.Code, Name: cust.Name}
	draft.Date = req.Date
	draft.DiscountAmount = req.DiscountAmount
	draft.Remark = req.Remark

	if req.Status != "" {
		draft.Status = req.Status
	}

	items := make([]invoice.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = invoice.LineItem{
			Description:  item.Description,
			PeriodStart:  item.PeriodStart,
			PeriodEnd:    item.PeriodEnd,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			ItemDiscount: item.ItemDiscount,
		}
	}

	draft.Items = items

	inv, err := h.svc.Submit(r.Context(), draft)
	if err != nil {
		if errors.Is(err, invoice.ErrMissingCustomer) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, err
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return nil, err
	}

	return inv, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invoices)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
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
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	pdf, err := invoice.RenderPDF(inv)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Number+".pdf"))

	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write pdf response", "error", err)
	}
}
