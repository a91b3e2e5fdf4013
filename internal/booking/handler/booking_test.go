package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roomdesk/internal/booking/service"
	"roomdesk/pkg/logger"
	"roomdesk/pkg/model"

	apperrors "roomdesk/pkg/errors"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockNegotiationService struct {
	submitFunc     func(ctx context.Context, apiKey string, req *model.BookingNotification) (*service.SubmitResult, error)
	resolveFunc    func(ctx context.Context, apiKey string, decision *model.AdminDecision) (*service.ResolveResult, error)
	bookDirectFunc func(ctx context.Context, apiKey string, req *model.BookRoomRequest) (*model.Booking, error)
	cancelFunc     func(ctx context.Context, apiKey string, req *model.CancelRequest) error
	verifyRoleFunc func(ctx context.Context, apiKey string, want model.Role) error
}

func (m *mockNegotiationService) VerifyRole(ctx context.Context, apiKey string, want model.Role) error {
	if m.verifyRoleFunc != nil {
		return m.verifyRoleFunc(ctx, apiKey, want)
	}
	return nil
}

func (m *mockNegotiationService) Submit(ctx context.Context, apiKey string, req *model.BookingNotification) (*service.SubmitResult, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, apiKey, req)
	}
	return &service.SubmitResult{Booking: &model.Booking{}}, nil
}

func (m *mockNegotiationService) Resolve(ctx context.Context, apiKey string, decision *model.AdminDecision) (*service.ResolveResult, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, apiKey, decision)
	}
	return &service.ResolveResult{Booking: &model.Booking{}}, nil
}

func (m *mockNegotiationService) BookDirect(ctx context.Context, apiKey string, req *model.BookRoomRequest) (*model.Booking, error) {
	if m.bookDirectFunc != nil {
		return m.bookDirectFunc(ctx, apiKey, req)
	}
	return &model.Booking{}, nil
}

func (m *mockNegotiationService) Cancel(ctx context.Context, apiKey string, req *model.CancelRequest) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, apiKey, req)
	}
	return nil
}

func testLog() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func newRouter(svc service.NegotiationService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, testLog()).RegisterRoutes(router)
	return router
}

func TestSubmitNotification_PassesAPIKey(t *testing.T) {
	var receivedKey string
	var receivedRoom string
	svc := &mockNegotiationService{
		submitFunc: func(ctx context.Context, apiKey string, req *model.BookingNotification) (*service.SubmitResult, error) {
			receivedKey = apiKey
			receivedRoom = req.RoomName
			return &service.SubmitResult{Booking: &model.Booking{Status: model.StatusPending}}, nil
		},
	}
	router := newRouter(svc)

	body := `{"room_name":"Sirius","start_time":"10:00","end_time":"11:00","date":"05.03","capacity":4,"activity":"Meeting","group_name":"PM22-1"}`
	req := httptest.NewRequest(http.MethodPost, "/classroom/notifications", strings.NewReader(body))
	req.Header.Set("X-API-Key", "student-key")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if receivedKey != "student-key" {
		t.Errorf("api key = %q, want %q", receivedKey, "student-key")
	}
	if receivedRoom != "Sirius" {
		t.Errorf("room = %q, want %q", receivedRoom, "Sirius")
	}
}

func TestSubmitNotification_InvalidBody(t *testing.T) {
	router := newRouter(&mockNegotiationService{})

	req := httptest.NewRequest(http.MethodPost, "/classroom/notifications", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSubmitNotification_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unauthorized",
			err:        apperrors.Unauthorized("Invalid API key"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   apperrors.CodeUnauthorized,
		},
		{
			name:       "unknown room",
			err:        apperrors.UnknownRoom("Broom Closet"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeUnknownRoom,
		},
		{
			name:       "capacity exceeded",
			err:        apperrors.CapacityExceeded("Sirius", 10, 6),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeCapacityExceeded,
		},
		{
			name:       "slot conflict",
			err:        apperrors.SlotConflict("Sirius"),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeSlotConflict,
		},
		{
			name:       "malformed schedule",
			err:        apperrors.MalformedSchedule("end is not after start"),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperrors.CodeMalformedSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockNegotiationService{
				submitFunc: func(ctx context.Context, apiKey string, req *model.BookingNotification) (*service.SubmitResult, error) {
					return nil, tt.err
				},
			}
			router := newRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/classroom/notifications", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestResolveDecision_NoPending(t *testing.T) {
	svc := &mockNegotiationService{
		resolveFunc: func(ctx context.Context, apiKey string, decision *model.AdminDecision) (*service.ResolveResult, error) {
			return nil, apperrors.NoPendingRequest()
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/admin/decisions", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("X-API-Key", "admin-key")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCancelBooking_NoContent(t *testing.T) {
	var received *model.CancelRequest
	svc := &mockNegotiationService{
		cancelFunc: func(ctx context.Context, apiKey string, req *model.CancelRequest) error {
			received = req
			return nil
		},
	}
	router := newRouter(svc)

	body := `{"room_name":"Sirius","start":"10:00","end":"11:00","date":"05.03"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/cancellations", strings.NewReader(body))
	req.Header.Set("X-API-Key", "admin-key")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if received == nil || received.RoomName != "Sirius" {
		t.Errorf("cancel request not forwarded: %+v", received)
	}
}

func TestBookRoom_Created(t *testing.T) {
	svc := &mockNegotiationService{
		bookDirectFunc: func(ctx context.Context, apiKey string, req *model.BookRoomRequest) (*model.Booking, error) {
			return &model.Booking{
				Room:   model.Room{Name: "Ada Lovelace", Capacity: 70},
				Status: model.StatusConfirmed,
			}, nil
		},
	}
	router := newRouter(svc)

	body := `{"room_name":"Ada Lovelace","start_time":"09:00","end_time":"12:00","date":"10.04","activity":"Lecture","group_name":"CS-101"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/bookings", strings.NewReader(body))
	req.Header.Set("X-API-Key", "admin-key")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Data.Status != model.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", resp.Data.Status)
	}
	if resp.Data.Room.Capacity != 70 {
		t.Errorf("capacity = %d, want 70", resp.Data.Room.Capacity)
	}
}
