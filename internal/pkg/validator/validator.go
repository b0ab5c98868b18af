package validator

import (
	"path/filepath"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidLatitude checks a decimal-degree latitude.
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude checks a decimal-degree longitude.
func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

var imageExts = []string{".jpg", ".jpeg", ".png"}

// IsImageFilename reports whether the filename carries a supported image
// extension (jpg, jpeg, png).
func IsImageFilename(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range imageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// IsInSlice reports whether value is present in slice.
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidClockTime checks an "HH:MM:SS" wall-clock string.
func IsValidClockTime(s string) bool {
	_, err := time.Parse("15:04:05", s)
	return err == nil
}
