package models

import "time"

// Guest is the registry entry for a hotel client.
type Guest struct {
	GuestID   string    `gorm:"column:guest_id;primaryKey"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	Phone     string    `gorm:"column:phone;not null;uniqueIndex"`
	Address   string    `gorm:"column:address"`
	LoyaltyID *string   `gorm:"column:loyalty_id"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	IsVIP     bool      `gorm:"column:is_vip;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// FullName joins first and last name for display and notifications.
func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
