package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecomdev/electronics-shop-api/internal/services"
	"github.com/ecomdev/electronics-shop-api/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

func parseSearchParams(c *gin.Context) services.ProductSearchParams {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			params.CategoryID = &id
		}
	}
	params.Brand = c.Query("brand")
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			params.PriceMin = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			params.PriceMax = &v
		}
	}
	params.InStock = c.Query("in_stock") == "true"
	params.Featured = c.Query("featured") == "true"

	return params
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	params := parseSearchParams(c)

	products, total, err := h.productService.Search(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "products retrieved", gin.H{
		"products":   products,
		"pagination": utils.NewPagination(total, params.PaginationParams),
	})
}

// GET /products/search?q=...
func (h *ProductHandler) Search(c *gin.Context) {
	params := parseSearchParams(c)
	if q := c.Query("q"); q != "" {
		params.Search = q
	}
	if params.Search == "" {
		utils.BadRequestResponse(c, "search query is required", nil)
		return
	}

	products, total, err := h.productService.Search(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "products retrieved", gin.H{
		"products":   products,
		"pagination": utils.NewPagination(total, params.PaginationParams),
	})
}

// GET /products/featured
func (h *ProductHandler) Featured(c *gin.Context) {
	limit := 8
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	products, err := h.productService.GetFeatured(limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "featured products retrieved", products)
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "product retrieved", product)
}

// POST /admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "product created", product)
}

// PUT /admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", err.Error())
		return
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "product updated", product)
}

// DELETE /admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "product deleted", nil)
}

// POST /admin/products/:id/images
func (h *ProductHandler) UploadImages(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "no images provided", nil)
		return
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			utils.BadRequestResponse(c, "failed to read uploaded file", err.Error())
			return
		}

		url, err := h.storageService.UploadProductImage(id, fileHeader.Filename, file)
		file.Close()
		if err != nil {
			handleServiceError(c, err)
			return
		}
		urls = append(urls, url)
	}

	product, err := h.productService.AppendImages(id, urls)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "images uploaded", product)
}
