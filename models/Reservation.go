package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation statuses. Cancelled and completed are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Payment methods accepted on the reservation form.
const (
	PaymentPix          = "pix"
	PaymentCreditCard   = "credit_card"
	PaymentDebitCard    = "debit_card"
	PaymentCash         = "cash"
	PaymentBankTransfer = "bank_transfer"
)

type Reservation struct {
	gorm.Model
	ClientID      uint           `json:"clientID" gorm:"not null;index"`
	CheckIn       time.Time      `json:"checkIn" gorm:"not null;index"`
	CheckOut      time.Time      `json:"checkOut" gorm:"not null;index"` // exclusive, checkout morning is free
	GuestsCount   int            `json:"guestsCount" gorm:"not null;default:1"`
	TotalAmount   float64        `json:"totalAmount" gorm:"not null"`
	DepositAmount float64        `json:"depositAmount"`
	DepositDate   *time.Time     `json:"depositDate"`
	PaymentMethod string         `json:"paymentMethod" gorm:"type:varchar(20);default:pix"`
	Status        string         `json:"status" gorm:"type:varchar(20);default:confirmed;index"`
	Notes         string         `json:"notes"`
	Documents     datatypes.JSON `json:"documents"` // contract / signature links for the mailer
	Client        Client         `json:"client" gorm:"foreignKey:ClientID"`
}

// IsTerminal reports whether the reservation can no longer transition.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}
