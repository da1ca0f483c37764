package models

import (
	"github.com/google/uuid"
)

type Address struct {
	BaseModel
	UserID       uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Type         AddressType `json:"type" gorm:"type:varchar(20);not null"`
	FirstName    string      `json:"first_name" gorm:"size:50;not null"`
	LastName     string      `json:"last_name" gorm:"size:50;not null"`
	Company      string      `json:"company" gorm:"size:100"`
	AddressLine1 string      `json:"address_line_1" gorm:"size:200;not null"`
	AddressLine2 string      `json:"address_line_2" gorm:"size:200"`
	City         string      `json:"city" gorm:"size:100;not null"`
	State        string      `json:"state" gorm:"size:100;not null"`
	PostalCode   string      `json:"postal_code" gorm:"size:20;not null"`
	Country      string      `json:"country" gorm:"size:100;not null"`
	Phone        string      `json:"phone" gorm:"size:20"`
	IsDefault    bool        `json:"is_default" gorm:"default:false"`
}

// Snapshot freezes the address for storage on an order.
func (a *Address) Snapshot() JSONB {
	return JSONB{
		"first_name":     a.FirstName,
		"last_name":      a.LastName,
		"company":        a.Company,
		"address_line_1": a.AddressLine1,
		"address_line_2": a.AddressLine2,
		"city":           a.City,
		"state":          a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
		"phone":          a.Phone,
	}
}
