package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roomdesk/internal/booking/service"
	"roomdesk/internal/notify"
	httputil "roomdesk/pkg/http"
	"roomdesk/pkg/logger"
	"roomdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// heartbeatInterval keeps idle streams alive through proxies that drop
// silent connections.
const heartbeatInterval = 30 * time.Second

// EventsHandler serves the admin event stream over SSE. Each connection is
// registered as an observer for the lifetime of the request; a client that
// stops reading is dropped by the registry on the next broadcast.
type EventsHandler struct {
	service  service.NegotiationService
	registry *notify.Registry
	log      *logger.Logger
}

func NewEventsHandler(service service.NegotiationService, registry *notify.Registry, log *logger.Logger) *EventsHandler {
	return &EventsHandler{
		service:  service,
		registry: registry,
		log:      log,
	}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.VerifyRole(r.Context(), r.Header.Get(apiKeyHeader), model.RoleAdmin); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Stream", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		if writeErr := httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
			Error: "Streaming not supported",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Stream", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	// A stream must outlive the server's write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.log.Warn("Failed to clear write deadline for event stream", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	observer := h.registry.Register()
	defer h.registry.Unregister(observer)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case ev := <-observer.Events():
			payload, err := json.Marshal(ev)
			if err != nil {
				h.log.Error("failed to encode event", "event_id", ev.ID, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Type, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *EventsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/admin/events", h.Stream)
}
