package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Store
	Perms     middleware.PermissionStore
	Audit     *audit.Service
}

func NewHandler(employees *employee.Store, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Employees: employees, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.With(middleware.RequireModule(auth.ModuleEmployees, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequireModule(auth.ModuleEmployees, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/leads", h.handleListLeads)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireModule(auth.ModuleEmployees, h.Perms)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleListLeads(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Employees.ListByRole(r.Context(), auth.RoleLead)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list leads", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	// Employees may only read their own profile.
	if user.Role == auth.RoleEmployee && user.UserID != employeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
		return
	}

	emp, err := h.Employees.ByID(r.Context(), employeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

type createEmployeeRequest struct {
	EmployeeCode   string   `json:"employeeId"`
	Name           string   `json:"name"`
	Username       string   `json:"username"`
	Password       string   `json:"password"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Department     string   `json:"department"`
	Designation    string   `json:"designation"`
	Salary         int64    `json:"salary"`
	Role           string   `json:"role"`
	JoiningDate    string   `json:"joiningDate"`
	ProfilePic     string   `json:"profilePic"`
	LeadID         string   `json:"leadId"`
	AllowedModules []string `json:"allowedModules"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	payload.Username = strings.TrimSpace(strings.ToLower(payload.Username))
	if payload.Role == "" {
		payload.Role = auth.RoleEmployee
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("username", payload.Username, "username is required")
	v.MinLen("password", payload.Password, 4, "password is too short")
	if !auth.ValidRole(payload.Role) {
		v.Add("role", "must be one of ADMIN, EMPLOYEE, LEAD")
	}
	if payload.Salary < 0 {
		v.Add("salary", "must not be negative")
	}
	if payload.JoiningDate != "" {
		v.Date("joiningDate", payload.JoiningDate)
	}
	if v.Reject(w, reqID) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	modules := payload.AllowedModules
	if modules == nil {
		modules = auth.DefaultModules[payload.Role]
	}

	id, err := h.Employees.Create(r.Context(), employee.CreateParams{
		EmployeeCode:   payload.EmployeeCode,
		Name:           payload.Name,
		Username:       payload.Username,
		PasswordHash:   hash,
		Email:          payload.Email,
		Phone:          payload.Phone,
		Department:     payload.Department,
		Designation:    payload.Designation,
		Salary:         payload.Salary,
		Role:           payload.Role,
		Status:         employee.StatusActive,
		JoiningDate:    payload.JoiningDate,
		ProfilePic:     payload.ProfilePic,
		LeadID:         payload.LeadID,
		AllowedModules: modules,
	})
	if errors.Is(err, employee.ErrUsernameExists) {
		api.Fail(w, http.StatusConflict, "username_exists", "username already exists", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "employee.create", "employee", id, payload.Username, reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit employee.create failed", "err", err)
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

type updateEmployeeRequest struct {
	EmployeeCode   *string   `json:"employeeId"`
	Name           *string   `json:"name"`
	Username       *string   `json:"username"`
	Password       *string   `json:"password"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Department     *string   `json:"department"`
	Designation    *string   `json:"designation"`
	Salary         *int64    `json:"salary"`
	Role           *string   `json:"role"`
	Status         *string   `json:"status"`
	JoiningDate    *string   `json:"joiningDate"`
	ProfilePic     *string   `json:"profilePic"`
	LeadID         *string   `json:"leadId"`
	AllowedModules *[]string `json:"allowedModules"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	var payload updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	if payload.Role != nil && !auth.ValidRole(*payload.Role) {
		v.Add("role", "must be one of ADMIN, EMPLOYEE, LEAD")
	}
	if payload.Salary != nil && *payload.Salary < 0 {
		v.Add("salary", "must not be negative")
	}
	if payload.Status != nil && *payload.Status != employee.StatusActive && *payload.Status != employee.StatusInactive {
		v.Add("status", "must be active or inactive")
	}
	if v.Reject(w, reqID) {
		return
	}

	params := employee.UpdateParams{
		EmployeeCode:   payload.EmployeeCode,
		Name:           payload.Name,
		Email:          payload.Email,
		Phone:          payload.Phone,
		Department:     payload.Department,
		Designation:    payload.Designation,
		Salary:         payload.Salary,
		Role:           payload.Role,
		Status:         payload.Status,
		JoiningDate:    payload.JoiningDate,
		ProfilePic:     payload.ProfilePic,
		LeadID:         payload.LeadID,
		AllowedModules: payload.AllowedModules,
	}
	if payload.Username != nil {
		username := strings.TrimSpace(strings.ToLower(*payload.Username))
		params.Username = &username
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
			return
		}
		params.PasswordHash = &hash
	}

	emp, err := h.Employees.Update(r.Context(), employeeID, params)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "employee.update", "employee", employeeID, "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit employee.update failed", "err", err)
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if user.UserID == employeeID {
		api.Fail(w, http.StatusBadRequest, "self_delete", "cannot delete your own account", reqID)
		return
	}

	err := h.Employees.Delete(r.Context(), employeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "employee.delete", "employee", employeeID, "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit employee.delete failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}
