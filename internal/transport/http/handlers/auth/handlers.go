package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

const minPasswordLength = 4

type Handler struct {
	Employees *employee.Store
	Audit     *audit.Service
	Secret    string
	TokenTTL  time.Duration
}

func NewHandler(employees *employee.Store, auditSvc *audit.Service, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Employees: employees, Audit: auditSvc, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireUser).Get("/auth/me", h.handleMe)
	r.With(middleware.RequireUser).Post("/auth/change-password", h.handleChangePassword)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  employee.Employee `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	username := strings.TrimSpace(strings.ToLower(payload.Username))
	if username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_credentials", "username and password are required", reqID)
		return
	}

	creds, err := h.Employees.ByUsername(r.Context(), username)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}
	if creds.Status != employee.StatusActive {
		api.Fail(w, http.StatusForbidden, "account_inactive", "account is inactive", reqID)
		return
	}
	if auth.CheckPassword(creds.PasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID: creds.ID,
		Name:   creds.Name,
		Role:   creds.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "login failed", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), creds.ID, "auth.login", "employee", creds.ID, "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit auth.login failed", "err", err)
	}
	api.Success(w, loginResponse{Token: token, User: creds.Employee}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	emp, err := h.Employees.ByID(r.Context(), user.UserID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "account no longer exists", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("currentPassword", payload.CurrentPassword, "current password is required")
	v.MinLen("newPassword", payload.NewPassword, minPasswordLength, "new password is too short")
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Employees.ByID(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to change password", reqID)
		return
	}
	creds, err := h.Employees.ByUsername(r.Context(), emp.Username)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to change password", reqID)
		return
	}
	if auth.CheckPassword(creds.PasswordHash, payload.CurrentPassword) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", reqID)
		return
	}

	hash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to change password", reqID)
		return
	}
	if err := h.Employees.UpdatePassword(r.Context(), user.UserID, hash); err != nil {
		api.Fail(w, http.StatusInternalServerError, "password_change_failed", "failed to change password", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "auth.password_change", "employee", user.UserID, "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit auth.password_change failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "password updated"}, reqID)
}
