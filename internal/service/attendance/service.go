package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/attendify/attendify-backend-go/internal/config"
	"github.com/attendify/attendify-backend-go/internal/domain/attendance"
	"github.com/attendify/attendify-backend-go/internal/pkg/utils"
	"github.com/attendify/attendify-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	attendance.UserStatusRepository
	fileService file.FileService
	office      config.OfficeConfig
	now         func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userStatusRepo attendance.UserStatusRepository,
	fileService file.FileService,
	office config.OfficeConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserStatusRepository: userStatusRepo,
		fileService:          fileService,
		office:               office,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// checkGeofence re-validates the office radius at the write boundary. The
// mobile client gates on the same check before capturing the photo; the
// server does not trust it.
func (a *AttendanceServiceImpl) checkGeofence(lat, lon float64) error {
	if lat == 0 && lon == 0 {
		// Null-island sentinel means no location fix was obtained; fail closed.
		return attendance.ErrLocationUnavailable
	}
	if !utils.IsWithinRadius(lat, lon, a.office.Latitude, a.office.Longitude, a.office.RadiusMeters) {
		return attendance.ErrOutsideOfficeRadius
	}
	return nil
}

// uploadOrReuseProof returns the evidence URL for a submission: the reference
// the client is retrying with, or a fresh upload. freshUpload tells the
// caller whether compensation should delete it if the submit fails. Request
// validation guarantees a photo is present whenever there is no reusable
// reference.
func (a *AttendanceServiceImpl) uploadOrReuseProof(ctx context.Context, userID string, reuse *string, photo multipart.File, header *multipart.FileHeader, clockType string) (proofURL string, freshUpload bool, err error) {
	if reuse != nil && *reuse != "" {
		return *reuse, false, nil
	}

	url, err := a.fileService.UploadAttendanceProof(ctx, userID, photo, header.Filename, clockType)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", attendance.ErrEvidenceUpload, err)
	}
	return url, true, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	proofURL, freshUpload, err := a.uploadOrReuseProof(ctx, userID, req.ProofPhotoURL, req.File, req.FileHeader, string(attendance.EventClockIn))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	data := attendance.Attendance{
		UserID:           userID,
		ClockIn:          a.now(),
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		ClockInPhotoURL:  &proofURL,
	}

	created, err := a.AttendanceRepository.SubmitClockIn(ctx, data)
	if err != nil {
		a.compensateProof(ctx, proofURL, freshUpload, err)
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	proofURL, freshUpload, err := a.uploadOrReuseProof(ctx, userID, req.ProofPhotoURL, req.File, req.FileHeader, string(attendance.EventClockOut))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	update := attendance.ClockOutUpdate{
		UserID:    userID,
		ClockOut:  a.now(),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		PhotoURL:  &proofURL,
	}

	updated, err := a.AttendanceRepository.SubmitClockOut(ctx, update)
	if err != nil {
		a.compensateProof(ctx, proofURL, freshUpload, err)
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(updated), nil
}

// compensateProof removes evidence uploaded during a submission whose
// transaction did not land, so failed submits leave no orphaned files. A
// reference the client is reusing across retries is left alone.
func (a *AttendanceServiceImpl) compensateProof(ctx context.Context, proofURL string, freshUpload bool, cause error) {
	if !freshUpload {
		return
	}
	if err := a.fileService.DeleteProof(ctx, proofURL); err != nil {
		slog.Error("failed to clean up attendance proof after failed submit",
			"proof_url", proofURL, "submit_error", cause, "error", err)
	}
}

// Latest implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Latest(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetLatestByUser(ctx, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(att), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	atts, err := a.AttendanceRepository.ListByUser(ctx, userID, filter.Sort)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to get attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(atts))
	for _, att := range atts {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	return attendance.HistoryResponse{
		TotalCount:  len(responses),
		Attendances: responses,
	}, nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context) (attendance.UserStatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.UserStatusResponse{}, err
	}

	status, err := a.UserStatusRepository.Get(ctx, userID)
	if err != nil {
		return attendance.UserStatusResponse{}, fmt.Errorf("failed to get user status: %w", err)
	}

	return attendance.UserStatusResponse{
		UserID:      status.UserID,
		IsClockedIn: status.IsClockedIn,
	}, nil
}

// timeToString formats a timestamp for responses.
func timeToString(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := timeToString(*t)
	return &formatted
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse.
// Millis fields mirror the mobile client's epoch representation; a zero
// ClockOutMillis means "not yet clocked out".
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var clockOutMillis int64
	if att.ClockOut != nil {
		clockOutMillis = att.ClockOut.UnixMilli()
	}

	return attendance.AttendanceResponse{
		ID:                att.ID,
		UserID:            att.UserID,
		ClockInTime:       timeToString(att.ClockIn),
		ClockInMillis:     att.ClockIn.UnixMilli(),
		ClockInLatitude:   att.ClockInLatitude,
		ClockInLongitude:  att.ClockInLongitude,
		ClockInPhotoURL:   att.ClockInPhotoURL,
		ClockOutTime:      timePtrToString(att.ClockOut),
		ClockOutMillis:    clockOutMillis,
		ClockOutLatitude:  att.ClockOutLatitude,
		ClockOutLongitude: att.ClockOutLongitude,
		ClockOutPhotoURL:  att.ClockOutPhotoURL,
		Open:              att.IsOpen(),
		CreatedAt:         timeToString(att.CreatedAt),
	}
}
