package handler

import (
	"net/http"

	"roomdesk/internal/booking/service"
	httputil "roomdesk/pkg/http"
	"roomdesk/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log,
	}
}

// ListSchedules returns the confirmed reservation calendar grouped by
// category and room. Rooms with no reservations appear with empty lists so
// the full inventory is always visible.
func (h *RoomHandler) ListSchedules(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	schedules, err := h.service.ConfirmedSchedules(r.Context(), query.Get("room_name"), query.Get("room_type"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListSchedules", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, schedules); err != nil {
		h.log.Error("failed to write success response", "handler", "ListSchedules", "operation", "WriteSuccess", "error", err)
	}
}

// ListCatalog returns the static room inventory with capacities.
func (h *RoomHandler) ListCatalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, service.Catalog()); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCatalog", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/classroom/rooms", h.ListSchedules)
	router.GET("/classroom/catalog", h.ListCatalog)
}
