package models

import "time"

// Roles. Admin is global-scope: it may touch any hotel's entities. The other
// roles are bound to their own hotel.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleChef    = "chef"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HotelID  *uint  `gorm:"index" json:"hotel_id,omitempty"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null" json:"role"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GlobalScope reports whether the user may operate across hotels.
func (u *User) GlobalScope() bool {
	return u.Role == RoleAdmin
}
