package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"nadgodziny/apperrors"
	"nadgodziny/middleware"
	"nadgodziny/models"
	"nadgodziny/services"

	"github.com/go-chi/chi/v5"
)

type overtimeService interface {
	SubmitRequest(actingUser *models.User, dateFrom, dateTo string, hours float64) error
	SubmitForced(actingManager *models.User, employeeID uint, date string, hours float64) error
	Resolve(requestID uint, approve bool) error
	ListRequests(actingUser *models.User, filter models.RequestFilter) ([]models.OvertimeRequest, error)
}

type dashboardService interface {
	EmployeeDashboard(userID uint) (*services.EmployeeDashboard, error)
	ManagerDashboard(managerID uint) (*services.ManagerDashboard, error)
}

type OvertimeHandler struct {
	overtime   overtimeService
	dashboards dashboardService
}

func NewOvertimeHandler(overtime overtimeService, dashboards dashboardService) *OvertimeHandler {
	return &OvertimeHandler{
		overtime:   overtime,
		dashboards: dashboards,
	}
}

type submitRequest struct {
	DateFrom string  `json:"date_from"`
	DateTo   string  `json:"date_to"`
	Hours    float64 `json:"hours"`
}

// Submit handles POST /api/requests.
func (h *OvertimeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("Nieprawidłowe dane wniosku"))
		return
	}

	if err := h.overtime.SubmitRequest(user, req.DateFrom, req.DateTo, req.Hours); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

type forcedRequest struct {
	EmployeeID uint    `json:"employee_id"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
}

// SubmitForced handles POST /api/requests/forced (manager only).
func (h *OvertimeHandler) SubmitForced(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req forcedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("Nieprawidłowe dane zlecenia"))
		return
	}

	if err := h.overtime.SubmitForced(user, req.EmployeeID, req.Date, req.Hours); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

type resolveRequest struct {
	Approve bool `json:"approve"`
}

// Resolve handles POST /api/requests/{id}/resolve (manager only).
func (h *OvertimeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeError(w, apperrors.Validation("Nieprawidłowy identyfikator wniosku"))
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("Nieprawidłowe dane"))
		return
	}

	if err := h.overtime.Resolve(uint(id), req.Approve); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// List handles GET /api/requests with optional month/year/status filters.
func (h *OvertimeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	filter := parseFilter(r)
	requests, err := h.overtime.ListRequests(user, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// EmployeeDashboard handles GET /api/dashboard/employee.
func (h *OvertimeHandler) EmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, apperrors.Authentication("Nie autoryzowano"))
		return
	}

	dashboard, err := h.dashboards.EmployeeDashboard(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// ManagerDashboard handles GET /api/dashboard/manager (manager only).
func (h *OvertimeHandler) ManagerDashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, apperrors.Authentication("Nie autoryzowano"))
		return
	}

	dashboard, err := h.dashboards.ManagerDashboard(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// ExportCSV handles GET /api/requests/export.csv (manager and hr).
func (h *OvertimeHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	filter := parseFilter(r)
	requests, err := h.overtime.ListRequests(user, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=wnioski.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"ID", "Pracownik", "Data", "Godziny", "Tryb", "Status"})
	for _, req := range requests {
		name := ""
		if req.User != nil {
			name = req.User.DisplayName()
		}
		writer.Write([]string{
			strconv.FormatUint(uint64(req.ID), 10),
			name,
			req.RequestDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", req.Hours),
			string(req.CompensationMode),
			string(req.Status),
		})
	}
}

func parseFilter(r *http.Request) models.RequestFilter {
	var filter models.RequestFilter
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		filter.Month = m
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y >= 2000 && y <= 2100 {
		filter.Year = y
	}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = models.RequestStatus(s)
	}
	return filter
}
