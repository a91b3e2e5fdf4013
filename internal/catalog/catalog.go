// Package catalog is the static room inventory: the closed set of bookable
// rooms with their category and maximum capacity. Adding a room means
// editing the table; anything outside it is rejected, never defaulted.
package catalog

import (
	"roomdesk/pkg/model"
	"roomdesk/pkg/sanitizer"
)

// RoomInfo pairs a room's category with its maximum capacity in one record
// so the two cannot drift apart.
type RoomInfo struct {
	Name        string
	Category    model.RoomCategory
	MaxCapacity int
}

var rooms = []RoomInfo{
	{Name: "Ada Lovelace", Category: model.CategoryClassrooms, MaxCapacity: 70},
	{Name: "Alan Turing", Category: model.CategoryClassrooms, MaxCapacity: 24},
	{Name: "Claude Shannon", Category: model.CategoryClassrooms, MaxCapacity: 32},
	{Name: "Donald Knuth", Category: model.CategoryClassrooms, MaxCapacity: 24},
	{Name: "Library", Category: model.CategoryClassrooms, MaxCapacity: 30},
	{Name: "William Shockley", Category: model.CategoryClassrooms, MaxCapacity: 20},

	{Name: "Darth Vader", Category: model.CategoryMeetingRooms, MaxCapacity: 9},
	{Name: "Sirius", Category: model.CategoryMeetingRooms, MaxCapacity: 6},
	{Name: "Proxima", Category: model.CategoryMeetingRooms, MaxCapacity: 3},

	{Name: "Recording Room", Category: model.CategoryOthers, MaxCapacity: 2},
	{Name: "Call Room N2", Category: model.CategoryOthers, MaxCapacity: 2},
}

var byKey = func() map[string]RoomInfo {
	m := make(map[string]RoomInfo, len(rooms))
	for _, r := range rooms {
		m[sanitizer.NormalizeRoomKey(r.Name)] = r
	}
	return m
}()

// Lookup resolves a free-text room name to its catalog record. The input is
// normalized (whitespace, case) before matching; a miss means the room does
// not exist, not that the spelling was off by convention.
func Lookup(name string) (RoomInfo, bool) {
	info, ok := byKey[sanitizer.NormalizeRoomKey(name)]
	return info, ok
}

// CategoryByName resolves a free-text category name to the canonical
// partition, under the same normalization as room lookup.
func CategoryByName(name string) (model.RoomCategory, bool) {
	key := sanitizer.NormalizeRoomKey(name)
	for _, c := range []model.RoomCategory{
		model.CategoryClassrooms,
		model.CategoryMeetingRooms,
		model.CategoryOthers,
	} {
		if key == sanitizer.NormalizeRoomKey(string(c)) {
			return c, true
		}
	}
	return "", false
}

// CategoryOf returns the fixed category partition for a room name.
func CategoryOf(name string) (model.RoomCategory, bool) {
	info, ok := Lookup(name)
	if !ok {
		return "", false
	}
	return info.Category, true
}

// All returns the full inventory in declaration order.
func All() []RoomInfo {
	out := make([]RoomInfo, len(rooms))
	copy(out, rooms)
	return out
}
