// ================== internal/features/categories/handler.go ==================
package categories

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gotasks/internal/pkg/response"
	apperrors "github.com/xyz-asif/gotasks/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Create a category
// @Description Create a shared category usable by all users
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category creation data"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} response.FieldErrors
// @Failure 401 {object} response.ErrorResponse
// @Router /categories/ [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if errs := ValidateCreateCategory(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	category := &Category{Name: req.Name}
	if err := h.service.Create(c.Request.Context(), category); err != nil {
		if isDuplicate(err) {
			response.ValidationFailed(c, response.FieldErrors{
				"name": {"category with this name already exists."},
			})
			return
		}
		response.InternalServerError(c, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category.ToResponse())
}

// List godoc
// @Summary List categories
// @Description Every category, insertion order
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /categories/ [get]
func (h *Handler) List(c *gin.Context) {
	cats, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, ToResponses(cats))
}

// Delete godoc
// @Summary Delete a category
// @Description Delete a category, nulling it out on every task that references it
// @Tags categories
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /categories/{id}/ [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		response.InternalServerError(c, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
