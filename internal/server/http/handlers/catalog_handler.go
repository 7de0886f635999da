package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
	"github.com/mymedina/commerce/internal/server/http/dto"
	"github.com/mymedina/commerce/internal/usecase"
)

// CatalogHandler manages category, product and variant endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// CreateCategory handles POST /api/categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil && *req.ParentID != "" {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid parent_id"})
			return
		}
		parentID = &parsed
	}

	category, err := h.facade.CreateCategory(c.Request.Context(), req.Name, parentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.facade.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, toCategoryResponse(cat))
	}
	c.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	in, ok := bindProductInput(c)
	if !ok {
		return
	}
	product, err := h.facade.CreateProduct(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// ListProducts handles GET /api/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
		Search: c.Query("search"),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category_id"})
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := model.ProductStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	products, total, err := h.facade.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	c.JSON(http.StatusOK, dto.ProductListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// GetProduct handles GET /api/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.facade.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// GetProductBySlug handles GET /api/products/slug/:slug.
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.facade.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// UpdateProduct handles PATCH /api/products/:id.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	in, ok := bindProductInput(c)
	if !ok {
		return
	}
	product, err := h.facade.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// DeactivateProduct handles DELETE /api/products/:id.
func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeactivateProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateVariant handles POST /api/products/:id/variants.
func (h *CatalogHandler) CreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}

	variant, err := h.facade.CreateVariant(c.Request.Context(), productID, usecase.VariantInput{
		SKU:           req.SKU,
		Size:          req.Size,
		Color:         req.Color,
		PriceOverride: req.PriceOverride,
		Stock:         req.Stock,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVariantResponse(*variant))
}

// ListVariants handles GET /api/products/:id/variants.
func (h *CatalogHandler) ListVariants(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variants, err := h.facade.ListVariants(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		response = append(response, toVariantResponse(v))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateVariant handles PATCH /api/variants/:id.
func (h *CatalogHandler) UpdateVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	variant, err := h.facade.UpdateVariant(c.Request.Context(), id, usecase.VariantInput{
		SKU:           req.SKU,
		Size:          req.Size,
		Color:         req.Color,
		PriceOverride: req.PriceOverride,
		Stock:         req.Stock,
	}, active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVariantResponse(*variant))
}

func bindProductInput(c *gin.Context) (usecase.ProductInput, bool) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "malformed request body"})
		return usecase.ProductInput{}, false
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid category_id"})
		return usecase.ProductInput{}, false
	}
	return usecase.ProductInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Weight:      req.Weight,
		Length:      req.Length,
		Width:       req.Width,
		Height:      req.Height,
		Status:      model.ProductStatus(req.Status),
	}, true
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

func toCategoryResponse(category model.Category) dto.CategoryResponse {
	response := dto.CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
		Slug: category.Slug,
	}
	for _, child := range category.Children {
		response.Children = append(response.Children, toCategoryResponse(child))
	}
	return response
}

func toProductResponse(product model.Product) dto.ProductResponse {
	response := dto.ProductResponse{
		ID:          product.ID.String(),
		CategoryID:  product.CategoryID.String(),
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		Weight:      product.Weight,
		Status:      string(product.Status),
		Active:      product.Active,
	}
	for _, v := range product.Variants {
		response.Variants = append(response.Variants, toVariantResponse(v))
	}
	return response
}

func toVariantResponse(variant model.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:            variant.ID.String(),
		SKU:           variant.SKU,
		Size:          variant.Size,
		Color:         variant.Color,
		PriceOverride: variant.PriceOverride,
		Stock:         variant.Stock,
		Active:        variant.Active,
	}
}
