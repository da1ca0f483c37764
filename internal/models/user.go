package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string   `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	FirstName    string   `json:"first_name" gorm:"size:50;not null"`
	LastName     string   `json:"last_name" gorm:"size:50;not null"`
	Phone        string   `json:"phone" gorm:"size:20"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'customer'"`
	IsActive     bool     `json:"is_active" gorm:"default:true"`

	// Relationships
	Orders    []Order    `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	CartItems []CartItem `json:"cart_items,omitempty" gorm:"foreignKey:UserID"`
	Addresses []Address  `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
