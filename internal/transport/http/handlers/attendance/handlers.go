package attendancehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/settings"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Attendance *attendance.Service
	Settings   *settings.Store
	Perms      middleware.PermissionStore
	Audit      *audit.Service
}

func NewHandler(att *attendance.Service, settingsStore *settings.Store, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Attendance: att, Settings: settingsStore, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.With(middleware.RequireModule(auth.ModuleAttendance, h.Perms)).Post("/", h.handleUpsert)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filter := attendance.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Date:       r.URL.Query().Get("date"),
	}
	// Employees only ever see their own records.
	if user.Role == auth.RoleEmployee {
		filter.EmployeeID = user.UserID
	}
	if filter.Date != "" {
		if _, err := time.Parse(attendance.DateLayout, filter.Date); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", reqID)
			return
		}
	}

	records, err := h.Attendance.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance", reqID)
		return
	}
	api.Success(w, records, reqID)
}

type upsertRequest struct {
	EmployeeID string               `json:"employeeId"`
	Date       string               `json:"date"`
	CheckIn    *string              `json:"checkIn"`
	CheckOut   *string              `json:"checkOut"`
	Status     string               `json:"status"`
	Location   *attendance.Location `json:"location"`
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Date("date", payload.Date)
	if payload.Status == "" {
		payload.Status = attendance.StatusPresent
	}
	v.Enum("status", payload.Status,
		[]string{attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLate},
		"must be Present, Absent or Late")
	if v.Reject(w, reqID) {
		return
	}

	rec, err := h.Attendance.Upsert(r.Context(), attendance.UpsertParams{
		EmployeeID: payload.EmployeeID,
		Date:       payload.Date,
		CheckIn:    payload.CheckIn,
		CheckOut:   payload.CheckOut,
		Status:     payload.Status,
		Method:     attendance.MethodManual,
		Location:   payload.Location,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_upsert_failed", "failed to save attendance", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "attendance.upsert", "attendance", rec.ID, payload.Date, reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit attendance.upsert failed", "err", err)
	}
	api.Success(w, rec, reqID)
}

type checkInRequest struct {
	Location *attendance.Location `json:"location"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload checkInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
			return
		}
	}

	cfg, err := h.Settings.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to check in", reqID)
		return
	}

	rec, err := h.Attendance.CheckIn(r.Context(), user.UserID, attendance.MethodAuto, payload.Location, time.Now().UTC(), cfg.OfficeStartTime)
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		api.Fail(w, http.StatusConflict, "already_checked_in", "already checked in today", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to check in", reqID)
		return
	}
	api.Created(w, rec, reqID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	cfg, err := h.Settings.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to check out", reqID)
		return
	}

	rec, err := h.Attendance.CheckOut(r.Context(), user.UserID, time.Now().UTC(), cfg.OfficeEndTime)
	switch {
	case errors.Is(err, attendance.ErrNoCheckIn):
		api.Fail(w, http.StatusBadRequest, "no_check_in", "no check-in record for today", reqID)
		return
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		api.Fail(w, http.StatusConflict, "already_checked_out", "already checked out today", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to check out", reqID)
		return
	}
	api.Success(w, rec, reqID)
}
