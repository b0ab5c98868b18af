package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/attendify/attendify-backend-go/internal/config"
	"github.com/attendify/attendify-backend-go/internal/domain/attendance"
	"github.com/attendify/attendify-backend-go/internal/handler/http/response"
	"github.com/attendify/attendify-backend-go/internal/pkg/utils"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Latest(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	window            config.ClockWindowConfig
	windowLoc         *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, window config.ClockWindowConfig) AttendanceHandler {
	loc, err := time.LoadLocation(window.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		window:            window,
		windowLoc:         loc,
	}
}

// checkClockWindow refuses clock actions outside the configured daily window.
// This is the caller-side policy gate: the ledger itself only cares about the
// state machine.
func (h *attendanceHandlerImpl) checkClockWindow(w http.ResponseWriter) bool {
	now := time.Now().In(h.windowLoc)
	if !utils.IsWithinClockWindow(now, h.window.Start, h.window.End) {
		response.HandleError(w, attendance.ErrOutsideClockWindow)
		return false
	}
	return true
}

// parseClockForm reads the multipart submission shared by both clock
// endpoints: a 'data' JSON field plus an optional 'photo' file (optional only
// when the data carries a reusable proof_photo_url).
func parseClockForm(w http.ResponseWriter, r *http.Request, dst interface{}) (ok bool) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return false
	}

	if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}

	return true
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	if !h.checkClockWindow(w) {
		return
	}

	var req attendance.ClockInRequest
	if !parseClockForm(w, r, &req) {
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if err == nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	if !h.checkClockWindow(w) {
		return
	}

	var req attendance.ClockOutRequest
	if !parseClockForm(w, r, &req) {
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	if err == nil {
		defer file.Close()
		req.File = file
		req.FileHeader = fileHeader
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// Latest implements AttendanceHandler.
func (h *attendanceHandlerImpl) Latest(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Latest(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := attendance.HistoryFilter{
		Sort: attendance.SortOrder(r.URL.Query().Get("sort")),
	}

	result, err := h.attendanceService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		TotalItems: int64(result.TotalCount),
	})
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
