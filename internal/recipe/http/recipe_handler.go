// Package http provides HTTP handlers for recipe management and hashing.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/shepatra/internal/httputil"
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	"github.com/allisson/shepatra/internal/recipe/http/dto"
	recipeUseCase "github.com/allisson/shepatra/internal/recipe/usecase"
	customValidation "github.com/allisson/shepatra/internal/validation"
)

// RecipeHandler handles HTTP requests for recipes and hashing.
type RecipeHandler struct {
	recipeUseCase recipeUseCase.RecipeUseCase
	logger        *slog.Logger
}

// NewRecipeHandler creates a new recipe handler with required dependencies.
func NewRecipeHandler(recipeUseCase recipeUseCase.RecipeUseCase, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeUseCase: recipeUseCase,
		logger:        logger,
	}
}

// ListAlgorithmsHandler lists the supported algorithms in registry order.
// GET /v1/algorithms
func (h *RecipeHandler) ListAlgorithmsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapAlgorithmsToListResponse(recipeDomain.Algorithms()))
}

// CreateHandler stores a new recipe.
// POST /v1/recipes - Returns 201 Created, 409 if the name is taken.
func (h *RecipeHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	recipe, err := req.Recipe()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	named, err := h.recipeUseCase.Create(c.Request.Context(), req.Name, recipe)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecipeToResponse(named))
}

// ReplaceHandler creates or overwrites the recipe named in the path.
// PUT /v1/recipes/:name - Returns 200 OK.
func (h *RecipeHandler) ReplaceHandler(c *gin.Context) {
	name := c.Param("name")

	var req dto.ReplaceRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	recipe, err := req.Recipe(name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	named, err := h.recipeUseCase.Replace(c.Request.Context(), name, recipe)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecipeToResponse(named))
}

// GetHandler retrieves a recipe by name.
// GET /v1/recipes/:name
func (h *RecipeHandler) GetHandler(c *gin.Context) {
	named, err := h.recipeUseCase.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecipeToResponse(named))
}

// ListHandler lists recipes ordered by name.
// GET /v1/recipes?offset=0&limit=50
func (h *RecipeHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	recipes, err := h.recipeUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecipesToListResponse(httputil.Page(recipes, offset, limit)))
}

// DeleteHandler removes a recipe by name.
// DELETE /v1/recipes/:name - Returns 204 No Content.
func (h *RecipeHandler) DeleteHandler(c *gin.Context) {
	if err := h.recipeUseCase.Delete(c.Request.Context(), c.Param("name")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// HashHandler applies the recipe named in the path to the request input.
// POST /v1/recipes/:name/hash - With "trace": true the response lists every layer.
func (h *RecipeHandler) HashHandler(c *gin.Context) {
	name := c.Param("name")

	var req dto.HashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if req.Trace {
		trace, err := h.recipeUseCase.Trace(c.Request.Context(), name, req.Input)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, dto.MapTraceToHashResponse(name, req.Input, trace))
		return
	}

	digest, err := h.recipeUseCase.Hash(c.Request.Context(), name, req.Input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.HashResponse{Recipe: name, Digest: digest})
}
