package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"storefront/config"
	"storefront/models"
	"storefront/repositories"
)

type CategoryController struct {
	productRepo *repositories.ProductRepository
}

func NewCategoryController() *CategoryController {
	return &CategoryController{
		productRepo: repositories.NewProductRepository(),
	}
}

// @Summary Get all categories
// @Description Get list of all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	rows, err := config.DB.Query(c.Request.Context(),
		"SELECT id, name, slug FROM categories ORDER BY name")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve categories"})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve categories"})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Categories retrieved", "data": categories})
}

// @Summary Get category by slug
// @Description Get a single category and its products
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug} [get]
func (ctrl *CategoryController) GetCategoryBySlug(c *gin.Context) {
	ctx := c.Request.Context()

	var cat models.Category
	err := config.DB.QueryRow(ctx,
		"SELECT id, name, slug FROM categories WHERE slug=$1",
		c.Param("slug")).Scan(&cat.ID, &cat.Name, &cat.Slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	products, err := ctrl.productRepo.FindByCategory(ctx, cat.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve category products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Category retrieved",
		"data":     cat,
		"products": products,
	})
}

// @Summary Create category
// @Description Create a new category (Admin)
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category name"
// @Success 201 {object} models.Response
// @Router /admin/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if len(name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name must be at least 3 characters"})
		return
	}

	ctx := c.Request.Context()
	categorySlug := slug.Make(name)

	var exists int
	config.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM categories WHERE slug=$1", categorySlug).Scan(&exists)
	if exists > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category already exists"})
		return
	}

	var cat models.Category
	err := config.DB.QueryRow(ctx,
		"INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id, name, slug",
		name, categorySlug).Scan(&cat.ID, &cat.Name, &cat.Slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Category created successfully", "data": cat})
}

// @Summary Update category
// @Description Rename a category; its slug is re-derived (Admin)
// @Tags Admin - Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "New name"
// @Success 200 {object} models.Response
// @Router /admin/categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category ID"})
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)

	var cat models.Category
	err = config.DB.QueryRow(c.Request.Context(),
		"UPDATE categories SET name=$1, slug=$2 WHERE id=$3 RETURNING id, name, slug",
		name, slug.Make(name), id).Scan(&cat.ID, &cat.Name, &cat.Slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully", "data": cat})
}

// @Summary Delete category
// @Description Delete a category (Admin)
// @Tags Admin - Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Router /admin/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category ID"})
		return
	}

	tag, err := config.DB.Exec(c.Request.Context(), "DELETE FROM categories WHERE id=$1", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully", "data": gin.H{"id": id}})
}
