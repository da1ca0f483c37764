package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ecomdev/electronics-shop-api/internal/services"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GET /products/:id/reviews
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	reviews, total, summary, err := h.reviewService.ListForProduct(productID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "reviews retrieved", gin.H{
		"reviews":    reviews,
		"summary":    summary,
		"pagination": utils.NewPagination(total, params),
	})
}

// POST /products/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.Create(userID, productID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "review submitted", review)
}

// PUT /reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.Update(reviewID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "review updated", review)
}

// DELETE /reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(reviewID, userID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "review deleted", nil)
}

// GET /admin/reviews/pending
func (h *ReviewHandler) ListPending(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.ListPending(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "pending reviews retrieved", gin.H{
		"reviews":    reviews,
		"pagination": utils.NewPagination(total, params),
	})
}

// PUT /admin/reviews/:id/moderate
func (h *ReviewHandler) Moderate(c *gin.Context) {
	reviewID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.Moderate(reviewID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "review moderated", review)
}
