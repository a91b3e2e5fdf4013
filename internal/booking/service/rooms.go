package service

import (
	"context"
	"fmt"

	"roomdesk/internal/booking/repository"
	"roomdesk/internal/catalog"
	"roomdesk/pkg/config"
	"roomdesk/pkg/model"

	apperrors "roomdesk/pkg/errors"
)

// ScheduleEntry is one confirmed reservation as shown to students. Group
// and activity are public; capacity is not.
type ScheduleEntry struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	GroupName string `json:"group_name"`
	Activity  string `json:"activity"`
}

// RoomSchedules groups confirmed bookings by category, then room. Rooms
// with no bookings still appear, with an empty list.
type RoomSchedules map[string]map[string][]ScheduleEntry

type RoomService interface {
	ConfirmedSchedules(ctx context.Context, roomName, roomType string) (RoomSchedules, error)
}

type roomService struct {
	repo repository.BookingRepository
	cfg  *config.Config
}

func NewRoomService(repo repository.BookingRepository, cfg *config.Config) RoomService {
	return &roomService{repo: repo, cfg: cfg}
}

const scheduleTimeLayout = "02.01 15:04"

// ConfirmedSchedules returns the confirmed reservation calendar, optionally
// narrowed to one room or one category. Filters match by the same
// normalization as booking, so "sirius" and "Sirius" are the same room.
func (s *roomService) ConfirmedSchedules(ctx context.Context, roomName, roomType string) (RoomSchedules, error) {
	var filterRoom string
	if roomName != "" {
		info, ok := catalog.Lookup(roomName)
		if !ok {
			return nil, apperrors.UnknownRoom(roomName)
		}
		filterRoom = info.Name
	}

	var filterCategory model.RoomCategory
	if roomType != "" {
		category, ok := catalog.CategoryByName(roomType)
		if !ok {
			return nil, apperrors.MalformedInput(fmt.Sprintf("unknown room type: %s", roomType))
		}
		filterCategory = category
	}

	bookings, err := s.repo.FindAllConfirmed(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	out := RoomSchedules{}
	for _, info := range catalog.All() {
		if filterRoom != "" && info.Name != filterRoom {
			continue
		}
		if filterCategory != "" && info.Category != filterCategory {
			continue
		}
		category := string(info.Category)
		if out[category] == nil {
			out[category] = map[string][]ScheduleEntry{}
		}
		out[category][info.Name] = []ScheduleEntry{}
	}

	for _, b := range bookings {
		category := string(b.Room.Category)
		roomEntries, ok := out[category]
		if !ok {
			continue
		}
		if _, ok := roomEntries[b.Room.Name]; !ok {
			continue
		}
		roomEntries[b.Room.Name] = append(roomEntries[b.Room.Name], ScheduleEntry{
			Start:     b.Start.Format(scheduleTimeLayout),
			End:       b.End.Format(scheduleTimeLayout),
			GroupName: b.GroupName,
			Activity:  string(b.Activity),
		})
	}

	s.cfg.Log.Debug("Room schedules assembled",
		"room_filter", roomName,
		"type_filter", roomType,
		"bookings", len(bookings),
	)
	return out, nil
}

// Catalog returns the static room inventory for listing endpoints.
func Catalog() []model.Room {
	infos := catalog.All()
	out := make([]model.Room, 0, len(infos))
	for _, info := range infos {
		out = append(out, model.Room{
			Name:     info.Name,
			Category: info.Category,
			Capacity: info.MaxCapacity,
		})
	}
	return out
}
