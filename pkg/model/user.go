package model

import "time"

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleStudent    Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name" validate:"required,alpha,min=3,max=50"`
	Surname     string    `json:"surname" bson:"surname" validate:"required,alpha,min=3,max=100"`
	Email       string    `json:"email" bson:"email" validate:"required,email"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number" validate:"required,min=10,max=20"`
	Role        Role      `json:"role" bson:"role" validate:"required,oneof=superadmin admin student"`
	GroupName   string    `json:"group_name" bson:"group_name" validate:"required,min=2,max=20"`
	APIKey      string    `json:"-" bson:"api_key" validate:"required"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
