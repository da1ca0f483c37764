package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecomdev/electronics-shop-api/internal/services"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func parseOrderListParams(c *gin.Context) services.OrderListParams {
	return services.OrderListParams{
		PaginationParams: utils.GetPaginationParams(c),
		Status:           c.Query("status"),
		PaymentStatus:    c.Query("payment_status"),
	}
}

// POST /orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	order, err := h.orderService.Checkout(userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "order placed", order)
}

// GET /orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := parseOrderListParams(c)
	orders, total, err := h.orderService.ListForUser(userID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "orders retrieved", gin.H{
		"orders":     orders,
		"pagination": utils.NewPagination(total, params.PaginationParams),
	})
}

// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(orderID, &userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "order retrieved", order)
}

// POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(orderID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "order cancelled", order)
}

// GET /admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	params := parseOrderListParams(c)
	orders, total, err := h.orderService.ListAll(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "orders retrieved", gin.H{
		"orders":     orders,
		"pagination": utils.NewPagination(total, params.PaginationParams),
	})
}

// GET /admin/orders/:id
func (h *OrderHandler) GetAny(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(orderID, nil)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "order retrieved", order)
}

// PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "order status updated", order)
}

// POST /admin/orders/:id/mark-paid
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		PaymentReference string `json:"payment_reference,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	order, err := h.orderService.MarkPaid(orderID, req.PaymentReference)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "order marked as paid", order)
}

// GET /admin/orders/stats
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "order stats retrieved", stats)
}
