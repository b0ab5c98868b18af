package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendify/attendify-backend-go/internal/config"
	"github.com/attendify/attendify-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	openWindow = config.ClockWindowConfig{Start: "00:00:00", End: "23:59:59", Timezone: "UTC"}
	shutWindow = config.ClockWindowConfig{Start: "00:00:00", End: "00:00:00", Timezone: "UTC"}
)

type fakeAttendanceService struct {
	clockInFn  func(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	clockOutFn func(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	latestFn   func(ctx context.Context) (attendance.AttendanceResponse, error)
	historyFn  func(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error)
	statusFn   func(ctx context.Context) (attendance.UserStatusResponse, error)
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, req)
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return f.clockOutFn(ctx, req)
}

func (f *fakeAttendanceService) Latest(ctx context.Context) (attendance.AttendanceResponse, error) {
	return f.latestFn(ctx)
}

func (f *fakeAttendanceService) History(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	return f.historyFn(ctx, filter)
}

func (f *fakeAttendanceService) Status(ctx context.Context) (attendance.UserStatusResponse, error) {
	return f.statusFn(ctx)
}

// clockRequest builds the multipart body the mobile client sends: a 'data'
// JSON field plus an optional 'photo' file.
func clockRequest(t *testing.T, target string, data interface{}, withPhoto bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	dataJSON, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("data", string(dataJSON)))

	if withPhoto {
		part, err := writer.CreateFormFile("photo", "proof.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-jpeg-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestClockIn_HandlerSuccess(t *testing.T) {
	var gotReq attendance.ClockInRequest
	svc := &fakeAttendanceService{
		clockInFn: func(_ context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			gotReq = req
			return attendance.AttendanceResponse{ID: "att-1", Open: true}, nil
		},
	}
	handler := NewAttendanceHandler(svc, openWindow)

	req := clockRequest(t, "/api/v1/attendance/clock-in", map[string]interface{}{
		"latitude":  -6.2,
		"longitude": 106.8,
	}, true)
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, -6.2, gotReq.Latitude)
	assert.Equal(t, 106.8, gotReq.Longitude)
	assert.NotNil(t, gotReq.File)
	require.NotNil(t, gotReq.FileHeader)
	assert.Equal(t, "proof.jpg", gotReq.FileHeader.Filename)

	payload := decodeBody(t, rec)
	assert.Equal(t, true, payload["success"])
}

func TestClockIn_OutsideClockWindow(t *testing.T) {
	svc := &fakeAttendanceService{
		clockInFn: func(_ context.Context, _ attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			t.Fatal("service must not be called outside the clock window")
			return attendance.AttendanceResponse{}, nil
		},
	}
	handler := NewAttendanceHandler(svc, shutWindow)

	req := clockRequest(t, "/api/v1/attendance/clock-in", map[string]interface{}{
		"latitude":  -6.2,
		"longitude": 106.8,
	}, true)
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestClockIn_MissingPhotoWithoutReusableProof(t *testing.T) {
	svc := &fakeAttendanceService{
		clockInFn: func(_ context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, req.Validate()
		},
	}
	handler := NewAttendanceHandler(svc, openWindow)

	req := clockRequest(t, "/api/v1/attendance/clock-in", map[string]interface{}{
		"latitude":  -6.2,
		"longitude": 106.8,
	}, false)
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestClockIn_ReusedProofWithoutPhotoAccepted(t *testing.T) {
	svc := &fakeAttendanceService{
		clockInFn: func(_ context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			if err := req.Validate(); err != nil {
				return attendance.AttendanceResponse{}, err
			}
			return attendance.AttendanceResponse{ID: "att-1", Open: true}, nil
		},
	}
	handler := NewAttendanceHandler(svc, openWindow)

	req := clockRequest(t, "/api/v1/attendance/clock-in", map[string]interface{}{
		"latitude":        -6.2,
		"longitude":       106.8,
		"proof_photo_url": "http://localhost:8080/uploads/attendance/u/earlier-CLOCK_IN.jpg",
	}, false)
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestClockIn_MissingDataField(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{}, openWindow)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.ClockIn(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClockOut_HandlerConflict(t *testing.T) {
	svc := &fakeAttendanceService{
		clockOutFn: func(_ context.Context, _ attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		},
	}
	handler := NewAttendanceHandler(svc, openWindow)

	req := clockRequest(t, "/api/v1/attendance/clock-out", map[string]interface{}{
		"latitude":  -6.2,
		"longitude": 106.8,
	}, true)
	rec := httptest.NewRecorder()

	handler.ClockOut(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	payload := decodeBody(t, rec)
	assert.Equal(t, false, payload["success"])
}

func TestHistory_PassesSortQuery(t *testing.T) {
	var gotFilter attendance.HistoryFilter
	svc := &fakeAttendanceService{
		historyFn: func(_ context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
			gotFilter = filter
			return attendance.HistoryResponse{
				TotalCount:  1,
				Attendances: []attendance.AttendanceResponse{{ID: "att-1"}},
			}, nil
		},
	}
	handler := NewAttendanceHandler(svc, openWindow)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/?sort=oldest", nil)
	rec := httptest.NewRecorder()

	handler.History(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, attendance.SortOldestFirst, gotFilter.Sort)

	payload := decodeBody(t, rec)
	meta, ok := payload["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), meta["total_items"])
}

func TestLatest_NotFound(t *testing.T) {
	svc := &fakeAttendanceService{
		latestFn: func(_ context.Context) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		},
	}
	handler := NewAttendanceHandler(svc, openWindow)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/latest", nil)
	rec := httptest.NewRecorder()

	handler.Latest(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatus_Handler(t *testing.T) {
	svc := &fakeAttendanceService{
		statusFn: func(_ context.Context) (attendance.UserStatusResponse, error) {
			return attendance.UserStatusResponse{UserID: "user-1", IsClockedIn: true}, nil
		},
	}
	handler := NewAttendanceHandler(svc, openWindow)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/status", nil)
	rec := httptest.NewRecorder()

	handler.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decodeBody(t, rec)
	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["is_clocked_in"])
}
