package model

import (
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityMeeting  ActivityType = "Meeting"
	ActivityLecture  ActivityType = "Lecture"
	ActivityWorkshop ActivityType = "Workshop"
	ActivityProject  ActivityType = "Project"
	ActivityOther    ActivityType = "Other"
)

// ParseActivity converts the wire form into the internal enum once, at the
// boundary. Values are never carried as raw strings past this point.
func ParseActivity(s string) (ActivityType, error) {
	switch ActivityType(s) {
	case ActivityMeeting, ActivityLecture, ActivityWorkshop, ActivityProject, ActivityOther:
		return ActivityType(s), nil
	}
	return "", fmt.Errorf("unknown activity type: %q", s)
}

type RoomCategory string

const (
	CategoryClassrooms   RoomCategory = "Classrooms"
	CategoryMeetingRooms RoomCategory = "Meeting Rooms"
	CategoryOthers       RoomCategory = "Others"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
)

// Room is the booked room as recorded on a booking. Capacity is the room's
// maximum for admin-placed bookings, or the student's requested headcount
// for staged ones.
type Room struct {
	Name     string       `json:"room_name" bson:"room_name"`
	Category RoomCategory `json:"room_type" bson:"room_type"`
	Capacity int          `json:"capacity" bson:"capacity"`
}

type Booking struct {
	ID        string        `json:"id,omitempty" bson:"_id,omitempty"`
	Room      Room          `json:"room" bson:"room"`
	Start     time.Time     `json:"start" bson:"start"`
	End       time.Time     `json:"end" bson:"end"`
	GroupName string        `json:"group_name" bson:"group_name"`
	Activity  ActivityType  `json:"activity" bson:"activity"`
	Status    BookingStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}
