package payrollhandler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/fine"
	"hrms/internal/domain/payroll"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Payroll   *payroll.Service
	Employees *employee.Store
	Fines     *fine.Store
	Perms     middleware.PermissionStore
	Audit     *audit.Service
}

func NewHandler(payrollSvc *payroll.Service, employees *employee.Store, fines *fine.Store, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Payroll: payrollSvc, Employees: employees, Fines: fines, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.With(middleware.RequireModule(auth.ModulePayroll, h.Perms)).Get("/", h.handleSheet)
		r.With(middleware.RequireModule(auth.ModulePayroll, h.Perms)).Get("/status", h.handleStatusList)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/process", h.handleProcess)
		r.Get("/me", h.handleSelfSalary)
		r.Get("/payslip/{employeeID}", h.handlePayslip)
	})
}

// sheetRow is a computed payroll row merged with its stored payment
// state for the month.
type sheetRow struct {
	payroll.Calculation
	Status string `json:"status"`
}

func (h *Handler) monthRef(r *http.Request) (time.Time, error) {
	return shared.MonthRef(r.URL.Query().Get("month"), r.URL.Query().Get("year"), time.Now().UTC())
}

func (h *Handler) handleSheet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	ref, err := h.monthRef(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be a full month name and year a four digit year", reqID)
		return
	}

	calcs, err := h.Payroll.Sheet(r.Context(), ref)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_sheet_failed", "failed to compute payroll", reqID)
		return
	}
	statuses, err := h.Payroll.StatusList(r.Context(), ref.Format("January"), ref.Format("2006"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_sheet_failed", "failed to compute payroll", reqID)
		return
	}

	byEmployee := make(map[string]string, len(statuses))
	for _, st := range statuses {
		byEmployee[st.EmployeeID] = st.Status
	}

	rows := make([]sheetRow, 0, len(calcs))
	for _, calc := range calcs {
		status := byEmployee[calc.EmployeeID]
		if status == "" {
			status = payroll.StatusPending
		}
		rows = append(rows, sheetRow{Calculation: calc, Status: status})
	}
	api.Success(w, rows, reqID)
}

func (h *Handler) handleStatusList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	ref, err := h.monthRef(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be a full month name and year a four digit year", reqID)
		return
	}

	statuses, err := h.Payroll.StatusList(r.Context(), ref.Format("January"), ref.Format("2006"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_status_failed", "failed to list payroll status", reqID)
		return
	}
	api.Success(w, statuses, reqID)
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	ref, err := h.monthRef(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be a full month name and year a four digit year", reqID)
		return
	}

	result, err := h.Payroll.Process(r.Context(), ref)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_process_failed", "failed to process payroll", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "payroll.process", "payroll", ref.Format("January 2006"),
		fmt.Sprintf("processed=%d failed=%d", result.Processed, len(result.FailedIDs)), reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit payroll.process failed", "err", err)
	}
	api.Success(w, result, reqID)
}

// selfSalary is the employee self-service salary view: basic pay against
// the fine ledger rather than the attendance sheet.
type selfSalary struct {
	BasicSalary int64       `json:"basicSalary"`
	UnpaidFines int64       `json:"unpaidFines"`
	NetSalary   int64       `json:"netSalary"`
	Fines       []fine.Fine `json:"fines"`
}

func (h *Handler) handleSelfSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	emp, err := h.Employees.ByID(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_failed", "failed to load salary", reqID)
		return
	}
	fines, err := h.Fines.List(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_failed", "failed to load salary", reqID)
		return
	}

	api.Success(w, selfSalary{
		BasicSalary: emp.Salary,
		UnpaidFines: fine.UnpaidTotal(fines, user.UserID),
		NetSalary:   payroll.EmployeeNetSalary(emp.Salary, fines, user.UserID),
		Fines:       fines,
	}, reqID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if user.Role != auth.RoleAdmin && user.UserID != employeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
		return
	}

	ref, err := h.monthRef(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be a full month name and year a four digit year", reqID)
		return
	}

	emp, err := h.Employees.ByID(r.Context(), employeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to generate payslip", reqID)
		return
	}

	records, err := h.Payroll.Attendance.ListMonth(r.Context(), ref)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to generate payslip", reqID)
		return
	}

	calc := payroll.Compute(emp, records, ref)
	pdf, err := payroll.RenderPayslip(calc, ref)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to generate payslip", reqID)
		return
	}

	filename := fmt.Sprintf("payslip-%s-%s.pdf", emp.Username, ref.Format("2006-01"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
