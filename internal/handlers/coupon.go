package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecomdev/electronics-shop-api/internal/services"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// POST /coupons/validate
func (h *CouponHandler) Validate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Code        string  `json:"code" binding:"required"`
		OrderAmount float64 `json:"order_amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	validation, err := h.couponService.Validate(userID, req.Code, req.OrderAmount)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupon is valid", validation)
}

// GET /admin/coupons
func (h *CouponHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	coupons, total, err := h.couponService.List(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupons retrieved", gin.H{
		"coupons":    coupons,
		"pagination": utils.NewPagination(total, params),
	})
}

// GET /admin/coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupon retrieved", coupon)
}

// POST /admin/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req services.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	coupon, err := h.couponService.Create(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "coupon created", coupon)
}

// PUT /admin/coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	coupon, err := h.couponService.Update(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupon updated", coupon)
}

// DELETE /admin/coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.couponService.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "coupon deleted", nil)
}
