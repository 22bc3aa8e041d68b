package importcsv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/customer"
	"github.com/zinminlatt/ispbill/internal/importer"
	"github.com/zinminlatt/ispbill/internal/plan"
	"github.com/zinminlatt/ispbill/internal/quarter"
)

type Handler struct {
	importSvc  *importer.Service
	custSvc    *customer.Service
	quarterSvc *quarter.Service
	planSvc    *plan.Service
}

func NewHandler(importSvc *importer.Service, custSvc *customer.Service, quarterSvc *quarter.Service, planSvc *plan.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		custSvc:    custSvc,
		quarterSvc: quarterSvc,
		planSvc:    planSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type customerResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	PrimaryPhone string    `json:"primary_phone"`
	ONUSerial    string    `json:"onu_serial,omitempty"`
}

type importSuccessResponse struct {
	Imported  int                `json:"imported"`
	Customers []customerResponse `json:"customers"`
}

type createParamsDTO struct {
	Name           string     `json:"name"`
	PrimaryPhone   string     `json:"primary_phone"`
	SecondaryPhone string     `json:"secondary_phone,omitempty"`
	Address        string     `json:"address"`
	QuarterID      uuid.UUID  `json:"quarter_id"`
	PlanID         uuid.UUID  `json:"plan_id"`
	ONUSerial      string     `json:"onu_serial,omitempty"`
	DNSN           string     `json:"dnsn,omitempty"`
	GPSCoords      string     `json:"gps_coords,omitempty"`
	InstallDate    time.Time  `json:"install_date"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
}

type conflictDTO struct {
	Incoming createParamsDTO  `json:"incoming"`
	Existing customerResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Import(importer.SourceSubscriberSheet, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := h.resolveRows(r, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	result, err := h.custSvc.ImportBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toCustomerResponse(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]customer.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, customer.CreateParams{
			Name:           p.Name,
			PrimaryPhone:   p.PrimaryPhone,
			SecondaryPhone: p.SecondaryPhone,
			Address:        p.Address,
			QuarterID:      p.QuarterID,
			PlanID:         p.PlanID,
			ONUSerial:      p.ONUSerial,
			DNSN:           p.DNSN,
			GPSCoords:      p.GPSCoords,
			InstallDate:    p.InstallDate,
			ExpiryDate:     p.ExpiryDate,
		})
	}

	customers, err := h.custSvc.CreateBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(customers)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// resolveRows turns the quarter and plan names carried by the sheet into
// record IDs. Every unknown name is reported, not just the first, so the
// operator can fix the sheet in one pass.
func (h *Handler) resolveRows(r *http.Request, rows []importer.Row) ([]customer.CreateParams, error) {
	quarters, err := h.quarterSvc.List(r.Context())
	if err != nil {
		return nil, fmt.Errorf("listing quarters: %w", err)
	}

	plans, err := h.planSvc.List(r.Context())
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}

	quarterIDs := make(map[string]uuid.UUID, len(quarters))
	for _, q := range quarters {
		quarterIDs[strings.ToLower(q.Name)] = q.ID
	}

	planIDs := make(map[string]uuid.UUID, len(plans))
	for _, p := range plans {
		planIDs[strings.ToLower(p.Name)] = p.ID
	}

	params := make([]customer.CreateParams, 0, len(rows))

	var unknown []string

	for _, row := range rows {
		quarterID, ok := quarterIDs[strings.ToLower(row.QuarterName)]
		if !ok {
			unknown = append(unknown, "quarter "+row.QuarterName)
			continue
		}

		planID, ok := planIDs[strings.ToLower(row.PlanName)]
		if !ok {
			unknown = append(unknown, "plan "+row.PlanName)
			continue
		}

		params = append(params, customer.CreateParams{
			Name:           row.Name,
			PrimaryPhone:   row.PrimaryPhone,
			SecondaryPhone: row.SecondaryPhone,
			Address:        row.Address,
			QuarterID:      quarterID,
			PlanID:         planID,
			ONUSerial:      row.ONUSerial,
			DNSN:           row.DNSN,
			GPSCoords:      row.GPSCoords,
			InstallDate:    row.InstallDate,
			ExpiryDate:     row.ExpiryDate,
		})
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown names in sheet: %s", strings.Join(unknown, ", "))
	}

	return params, nil
}

func toSuccessResponse(customers []*customer.Customer) importSuccessResponse {
	responses := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, toCustomerResponse(c))
	}

	return importSuccessResponse{
		Imported:  len(customers),
		Customers: responses,
	}
}

func toCustomerResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		PrimaryPhone: c.PrimaryPhone,
		ONUSerial:    c.ONUSerial,
	}
}

func toParamsDTO(p customer.CreateParams) createParamsDTO {
	return createParamsDTO{
		Name:           p.Name,
		PrimaryPhone:   p.PrimaryPhone,
		SecondaryPhone: p.SecondaryPhone,
		Address:        p.Address,
		QuarterID:      p.QuarterID,
		PlanID:         p.PlanID,
		ONUSerial:      p.ONUSerial,
		DNSN:           p.DNSN,
		GPSCoords:      p.GPSCoords,
		InstallDate:    p.InstallDate,
		ExpiryDate:     p.ExpiryDate,
	}
}
