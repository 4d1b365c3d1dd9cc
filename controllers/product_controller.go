package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"storefront/config"
	"storefront/models"
	"storefront/repositories"
)

// photo uploads above this size are rejected, matching the storefront's
// product form limit
const maxPhotoSize = 1 << 20

type ProductController struct {
	productRepo *repositories.ProductRepository
}

func NewProductController() *ProductController {
	return &ProductController{
		productRepo: repositories.NewProductRepository(),
	}
}

func productCacheKey(page, limit int) string {
	return fmt.Sprintf("products_list_p%d_l%d", page, limit)
}

func invalidateProductCache() {
	if config.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := config.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary Get all products
// @Description Get paginated list of products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}

	cacheKey := productCacheKey(page, limit)
	ctx := c.Request.Context()

	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	products, total, err := ctrl.productRepo.FindAll(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve products"})
		return
	}

	response := models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if config.RedisClient != nil {
		if jsonData, err := json.Marshal(response); err == nil {
			config.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product by slug
// @Description Get a single product by its slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := ctrl.productRepo.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

// @Summary Get product photo
// @Description Stream a product's photo
// @Tags Products
// @Produce octet-stream
// @Param id path int true "Product ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /products/photo/{id} [get]
func (ctrl *ProductController) GetProductPhoto(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	photo, err := ctrl.productRepo.GetPhoto(c.Request.Context(), id)
	if err != nil || len(photo.Data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Photo not found"})
		return
	}

	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

// @Summary Search products
// @Description Search products by keyword in name or description
// @Tags Products
// @Produce json
// @Param keyword path string true "Search keyword"
// @Success 200 {array} models.Product
// @Router /products/search/{keyword} [get]
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	products, err := ctrl.productRepo.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// @Summary Get related products
// @Description Get products from the same category
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {array} models.Product
// @Router /products/{slug}/related [get]
func (ctrl *ProductController) GetRelatedProducts(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := ctrl.productRepo.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	related, err := ctrl.productRepo.Related(ctx, product.ID, product.CategoryID, 4)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve related products"})
		return
	}

	c.JSON(http.StatusOK, related)
}

// @Summary Filter products
// @Description Filter products by category and price range
// @Tags Products
// @Produce json
// @Param category query string false "Category slug"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {array} models.Product
// @Router /products/filter [get]
func (ctrl *ProductController) FilterProducts(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	minPrice := strings.TrimSpace(c.Query("min_price"))
	maxPrice := strings.TrimSpace(c.Query("max_price"))

	query := `SELECT id, name, slug, description, price, category_id, quantity, shipping, created_at, updated_at
	          FROM products WHERE 1=1`
	args := []interface{}{}
	paramIndex := 1

	if category != "" {
		query += fmt.Sprintf(" AND category_id IN (SELECT id FROM categories WHERE slug=$%d)", paramIndex)
		args = append(args, category)
		paramIndex++
	}
	if minPrice != "" {
		min, err := decimal.NewFromString(minPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid min_price"})
			return
		}
		query += fmt.Sprintf(" AND price >= $%d", paramIndex)
		args = append(args, min)
		paramIndex++
	}
	if maxPrice != "" {
		max, err := decimal.NewFromString(maxPrice)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid max_price"})
			return
		}
		query += fmt.Sprintf(" AND price <= $%d", paramIndex)
		args = append(args, max)
		paramIndex++
	}
	query += " ORDER BY created_at DESC"

	rows, err := config.DB.Query(c.Request.Context(), query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Filter failed"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
			&p.CategoryID, &p.Quantity, &p.Shipping, &p.CreatedAt, &p.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Filter failed"})
			return
		}
		products = append(products, p)
	}

	c.JSON(http.StatusOK, products)
}

func (ctrl *ProductController) bindProductForm(c *gin.Context, product *models.Product) (*models.ProductPhoto, bool) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	priceStr := strings.TrimSpace(c.PostForm("price"))
	categoryID, _ := strconv.Atoi(c.PostForm("category_id"))
	quantity, _ := strconv.Atoi(c.PostForm("quantity"))
	shipping := c.PostForm("shipping") == "true" || c.PostForm("shipping") == "1"

	if name == "" || description == "" || priceStr == "" || categoryID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, description, price, and category are required"})
		return nil, false
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return nil, false
	}

	product.Name = name
	product.Slug = slug.Make(name)
	product.Description = description
	product.Price = price
	product.CategoryID = categoryID
	product.Quantity = quantity
	product.Shipping = shipping

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, true
	}

	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo must be less than 1MB"})
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read photo"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to read photo"})
		return nil, false
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo must be an image"})
		return nil, false
	}

	return &models.ProductPhoto{Data: data, ContentType: contentType}, true
}

// @Summary Create product
// @Description Create a new product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param price formData number true "Price"
// @Param category_id formData int true "Category ID"
// @Param quantity formData int false "Quantity on hand"
// @Param shipping formData bool false "Shipping available"
// @Param photo formData file false "Product photo (max 1MB)"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var product models.Product
	photo, ok := ctrl.bindProductForm(c, &product)
	if !ok {
		return
	}

	if err := ctrl.productRepo.Create(c.Request.Context(), &product, photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product", "error": err.Error()})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// @Summary Update product
// @Description Update an existing product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var product models.Product
	photo, ok := ctrl.bindProductForm(c, &product)
	if !ok {
		return
	}
	product.ID = id

	if err := ctrl.productRepo.Update(c.Request.Context(), &product, photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product", "error": err.Error()})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// @Summary Delete product
// @Description Delete a product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if err := ctrl.productRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully", "data": gin.H{"id": id}})
}
