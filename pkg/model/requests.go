package model

// BookingNotification is the student submission payload. Times arrive as
// wire strings and are parsed into a schedule.Window at the boundary.
type BookingNotification struct {
	RoomName  string `json:"room_name" validate:"required,min=2,max=50"`
	StartTime string `json:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" validate:"required,clock_time"`
	Date      string `json:"date" validate:"required,day_month"`
	Capacity  int    `json:"capacity" validate:"required,min=1,max=200"`
	Activity  string `json:"activity" validate:"required,oneof=Meeting Lecture Workshop Project Other"`
	GroupName string `json:"group_name" validate:"required,min=2,max=20"`
}

// AdminDecision resolves whatever is currently staged; it carries no
// booking identifier on purpose.
type AdminDecision struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected"`
}

// BookRoomRequest is the admin direct-booking payload. There is no
// capacity field: direct bookings always take the room's maximum.
type BookRoomRequest struct {
	RoomName  string `json:"room_name" validate:"required,min=2,max=50"`
	StartTime string `json:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" validate:"required,clock_time"`
	Date      string `json:"date" validate:"required,day_month"`
	Activity  string `json:"activity" validate:"required,oneof=Meeting Lecture Workshop Project Other"`
	GroupName string `json:"group_name" validate:"required,min=2,max=20"`
}

type CancelRequest struct {
	RoomName string `json:"room_name" validate:"required,min=2,max=50"`
	Start    string `json:"start" validate:"required,clock_time"`
	End      string `json:"end" validate:"required,clock_time"`
	Date     string `json:"date" validate:"required,day_month"`
}
