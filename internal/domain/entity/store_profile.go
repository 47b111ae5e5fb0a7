package entity

import (
	"time"
)

// StoreProfile is the single row of shop identity stamped onto receipts.
type StoreProfile struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	AddressLine1 string    `gorm:"size:255" json:"address_line1"`
	AddressLine2 string    `gorm:"size:255" json:"address_line2"`
	GSTIN        string    `gorm:"size:50;column:gstin" json:"gstin"`
	Phone        string    `gorm:"size:50" json:"phone"`
	Email        string    `gorm:"size:255" json:"email"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for the StoreProfile model
func (StoreProfile) TableName() string {
	return "store_profile"
}

// DefaultStoreProfile seeds the profile when none has been saved yet.
func DefaultStoreProfile() *StoreProfile {
	return &StoreProfile{
		ID:           1,
		Name:         "InstaMart India",
		AddressLine1: "Gujrat",
		AddressLine2: "Bhavnagar",
		GSTIN:        "29AAAAA0000A1Z5",
		Phone:        "+91 9529989821",
		Email:        "support@instamart.in",
	}
}
