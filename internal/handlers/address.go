package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecomdev/electronics-shop-api/internal/services"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

// GET /addresses
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(userID, c.Query("type"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "addresses retrieved", addresses)
}

// POST /addresses
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	address, err := h.addressService.Create(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "address created", address)
}

// PUT /addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addressID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	address, err := h.addressService.Update(userID, addressID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "address updated", address)
}

// DELETE /addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addressID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(userID, addressID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "address deleted", nil)
}

// PUT /addresses/:id/default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addressID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.addressService.SetDefault(userID, addressID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "default address updated", address)
}
