package handler

import (
	"encoding/json"
	"net/http"

	"roomdesk/internal/booking/service"
	httputil "roomdesk/pkg/http"
	"roomdesk/pkg/logger"
	"roomdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// apiKeyHeader carries the caller's credential on every authenticated route.
const apiKeyHeader = "X-API-Key"

type BookingHandler struct {
	service service.NegotiationService
	log     *logger.Logger
}

func NewBookingHandler(service service.NegotiationService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) SubmitNotification(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingNotification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SubmitNotification", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Submit(r.Context(), r.Header.Get(apiKeyHeader), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SubmitNotification", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "SubmitNotification", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) ResolveDecision(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var decision model.AdminDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ResolveDecision", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Resolve(r.Context(), r.Header.Get(apiKeyHeader), &decision)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ResolveDecision", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "ResolveDecision", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) BookRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "BookRoom", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.BookDirect(r.Context(), r.Header.Get(apiKeyHeader), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "BookRoom", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CancelBooking", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Cancel(r.Context(), r.Header.Get(apiKeyHeader), &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CancelBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/classroom/notifications", h.SubmitNotification)
	router.POST("/admin/decisions", h.ResolveDecision)
	router.POST("/admin/bookings", h.BookRoom)
	router.POST("/admin/cancellations", h.CancelBooking)
}
