package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/models"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type AddressService struct {
	db *gorm.DB
}

type CreateAddressRequest struct {
	Type         string `json:"type" validate:"required,oneof=shipping billing"`
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Company      string `json:"company,omitempty" validate:"omitempty,max=100"`
	AddressLine1 string `json:"address_line1" validate:"required,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,max=100"`
	PostalCode   string `json:"postal_code" validate:"required,max=20"`
	Country      string `json:"country" validate:"required,max=100"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
	IsDefault    bool   `json:"is_default,omitempty"`
}

type UpdateAddressRequest struct {
	FirstName    string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName     string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Company      *string `json:"company,omitempty" validate:"omitempty,max=100"`
	AddressLine1 string `json:"address_line1,omitempty" validate:"omitempty,max=200"`
	AddressLine2 *string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode   string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country      string `json:"country,omitempty" validate:"omitempty,max=100"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	IsDefault    *bool  `json:"is_default,omitempty"`
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func (s *AddressService) List(userID uuid.UUID, addressType string) ([]models.Address, error) {
	query := s.db.Where("user_id = ?", userID)
	if addressType != "" {
		t := models.AddressType(addressType)
		if !t.IsValid() {
			return nil, NewDomainError("invalid address type: %s", addressType)
		}
		query = query.Where("type = ?", t)
	}

	var addresses []models.Address
	if err := query.Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch addresses: %w", err)
	}

	return addresses, nil
}

func (s *AddressService) Get(userID, addressID uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := s.db.Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Address")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &address, nil
}

func (s *AddressService) Create(userID uuid.UUID, req *CreateAddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:       userID,
		Type:         models.AddressType(req.Type),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Company:      req.Company,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		Phone:        req.Phone,
		IsDefault:    req.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The first address of a type becomes the default automatically.
		var count int64
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND type = ?", userID, address.Type).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		}

		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND type = ?", userID, address.Type).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		return tx.Create(address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return address, nil
}

func (s *AddressService) Update(userID, addressID uuid.UUID, req *UpdateAddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	address, err := s.Get(userID, addressID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.AddressLine1 != "" {
		updates["address_line1"] = req.AddressLine1
	}
	if req.AddressLine2 != nil {
		updates["address_line2"] = *req.AddressLine2
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.State != "" {
		updates["state"] = req.State
	}
	if req.PostalCode != "" {
		updates["postal_code"] = req.PostalCode
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND type = ?", userID, address.Type).
				Update("is_default", false).Error; err != nil {
				return err
			}
			updates["is_default"] = true
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(address).Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	return s.Get(userID, addressID)
}

func (s *AddressService) Delete(userID, addressID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Address")
	}

	return nil
}

// SetDefault marks an address as the default for its type, clearing the
// flag on the user's other addresses of the same type.
func (s *AddressService) SetDefault(userID, addressID uuid.UUID) (*models.Address, error) {
	address, err := s.Get(userID, addressID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND type = ?", userID, address.Type).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(address).Update("is_default", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set default address: %w", err)
	}
	address.IsDefault = true

	return address, nil
}
