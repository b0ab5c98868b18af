package response

import (
	"errors"
	"net/http"

	"github.com/attendify/attendify-backend-go/internal/domain/attendance"
	"github.com/attendify/attendify-backend-go/internal/domain/auth"
	"github.com/attendify/attendify-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Clock-event precondition errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrOutsideOfficeRadius):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrOutsideClockWindow):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrLocationUnavailable):
		Forbidden(w, attendance.ErrOutsideOfficeRadius.Error())

	// Read-side errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "No attendance history found")

	// Storage errors
	case errors.Is(err, attendance.ErrEvidenceUpload),
		errors.Is(err, attendance.ErrEvidenceDelete):
		BadGateway(w, "Failed to store attendance proof, try again later")
	case errors.Is(err, attendance.ErrTransientWrite):
		ServiceUnavailable(w, "Attendance write failed, try again")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
