package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecomdev/electronics-shop-api/internal/services"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "dashboard retrieved", stats)
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := services.UserListParams{
		PaginationParams: utils.GetPaginationParams(c),
		Role:             c.Query("role"),
	}
	if raw := c.Query("is_active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			params.IsActive = &v
		}
	}

	users, total, err := h.adminService.ListUsers(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "users retrieved", gin.H{
		"users":      users,
		"pagination": utils.NewPagination(total, params.PaginationParams),
	})
}

// POST /admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	user, err := h.adminService.CreateUser(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "user created", user)
}

// GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.GetUser(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "user retrieved", user)
}

// PUT /admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	user, err := h.adminService.UpdateUser(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "user updated", user)
}

// PUT /admin/users/:id/toggle
func (h *AdminHandler) ToggleUserStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.ToggleUserStatus(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "user status updated", user)
}

// GET /admin/analytics/products
func (h *AdminHandler) ProductAnalytics(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	analytics, err := h.adminService.ProductAnalytics(limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "product analytics retrieved", analytics)
}

// GET /admin/analytics/revenue
func (h *AdminHandler) RevenueAnalytics(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			days = v
		}
	}

	daily, err := h.adminService.RevenueByDay(days)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	byCategory, err := h.adminService.RevenueByCategory()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "revenue analytics retrieved", gin.H{
		"daily":       daily,
		"by_category": byCategory,
	})
}
