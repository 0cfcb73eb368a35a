package domain

import "time"

const (
	RoleStaff = "staff"
	RoleBoy   = "boy"
)

type User struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	StaffID        string    `json:"staff_id,omitempty"`
	BoyID          string    `json:"boy_id,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	UPIID          string    `json:"upi_id,omitempty"`
	FirstTimeLogin bool      `json:"first_time_login"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
