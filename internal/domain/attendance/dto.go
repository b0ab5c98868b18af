package attendance

import (
	"mime/multipart"

	"github.com/attendify/attendify-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// ProofPhotoURL carries an already-uploaded proof reference on retry, so a
	// resubmission reuses the evidence instead of uploading it again.
	ProofPhotoURL *string               `json:"proof_photo_url,omitempty"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	return validateClockRequest(r.Latitude, r.Longitude, r.ProofPhotoURL, r.FileHeader)
}

type ClockOutRequest struct {
	Latitude      float64               `json:"latitude"`
	Longitude     float64               `json:"longitude"`
	ProofPhotoURL *string               `json:"proof_photo_url,omitempty"`
	File          multipart.File        `json:"-"`
	FileHeader    *multipart.FileHeader `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	return validateClockRequest(r.Latitude, r.Longitude, r.ProofPhotoURL, r.FileHeader)
}

func validateClockRequest(lat, lon float64, proofURL *string, fileHeader *multipart.FileHeader) error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(lon) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	hasReusableProof := proofURL != nil && !validator.IsEmpty(*proofURL)

	if fileHeader == nil {
		if !hasReusableProof {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "attendance proof photo is required",
			})
		}
	} else if !validator.IsImageFilename(fileHeader.Filename) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if fileHeader.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "attendance proof photo size must not exceed 10MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	Sort SortOrder `json:"sort"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Sort == "" {
		f.Sort = SortNewestFirst
	}

	if f.Sort != SortNewestFirst && f.Sort != SortOldestFirst {
		errs = append(errs, validator.ValidationError{
			Field:   "sort",
			Message: "sort must be either 'newest' or 'oldest'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	ClockInTime       string   `json:"clock_in_time"`
	ClockInMillis     int64    `json:"clock_in_millis"`
	ClockInLatitude   float64  `json:"clock_in_latitude"`
	ClockInLongitude  float64  `json:"clock_in_longitude"`
	ClockInPhotoURL   *string  `json:"clock_in_photo_url"`
	ClockOutTime      *string  `json:"clock_out_time"`
	ClockOutMillis    int64    `json:"clock_out_millis"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude"`
	ClockOutLongitude *float64 `json:"clock_out_longitude"`
	ClockOutPhotoURL  *string  `json:"clock_out_photo_url"`
	Open              bool     `json:"open"`
	CreatedAt         string   `json:"created_at"`
}

type HistoryResponse struct {
	TotalCount  int                  `json:"total_count"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type UserStatusResponse struct {
	UserID      string `json:"user_id"`
	IsClockedIn bool   `json:"is_clocked_in"`
}
