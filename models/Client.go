package models

import (
	"gorm.io/gorm"
)

type Client struct {
	gorm.Model
	FullName       string        `json:"fullName" gorm:"not null"`
	TaxID          string        `json:"taxID" gorm:"column:tax_id;uniqueIndex;not null"`
	NationalID     string        `json:"nationalID" gorm:"column:national_id"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	AddressZipCode string        `json:"addressZipCode"`
	AddressStreet  string        `json:"addressStreet"`
	Reservations   []Reservation `json:"reservations,omitempty" gorm:"foreignKey:ClientID;references:ID"`
}

// DisplayName is what the occupancy calendar shows on occupied days.
func (c *Client) DisplayName() string {
	return c.FullName
}
