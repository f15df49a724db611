package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
	"github.com/ledgerkeep/inventory/internal/inventory/usecase/command"
	"github.com/ledgerkeep/inventory/internal/inventory/usecase/query"
	"github.com/ledgerkeep/inventory/pkg/logger"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	createHandler *command.CreateCategoryHandler
	updateHandler *command.UpdateCategoryHandler
	deleteHandler *command.DeleteCategoryHandler

	getHandler  *query.GetCategoryHandler
	listHandler *query.ListCategoriesHandler

	repo domain.CategoryRepository
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(
	createHandler *command.CreateCategoryHandler,
	updateHandler *command.UpdateCategoryHandler,
	deleteHandler *command.DeleteCategoryHandler,
	getHandler *query.GetCategoryHandler,
	listHandler *query.ListCategoriesHandler,
	repo domain.CategoryRepository,
) *CategoryHandler {
	return &CategoryHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		repo:          repo,
	}
}

// RegisterRoutes registers all category routes. Reads need authentication,
// writes need staff privilege.
func (h *CategoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/categories", AuthMiddleware(h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/categories/{id}", AuthMiddleware(h.GetCategory)).Methods("GET")

	router.HandleFunc("/api/categories", StaffMiddleware(h.CreateCategory)).Methods("POST")
	router.HandleFunc("/api/categories/{id}", StaffMiddleware(h.UpdateCategory)).Methods("PUT")
	router.HandleFunc("/api/categories/{id}", StaffMiddleware(h.DeleteCategory)).Methods("DELETE")
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.createHandler.Handle(command.CreateCategoryCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create category")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.ListCategoriesQuery{Limit: limit, Offset: offset}
	categories, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list categories")
		respondError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"categories": categories,
			"total":      count,
			"limit":      q.Limit,
			"offset":     offset,
		},
	})
}

// GetCategory handles GET /api/categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.getHandler.Handle(query.GetCategoryQuery{ID: id})
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    category,
	})
}

// UpdateCategory handles PUT /api/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.updateHandler.Handle(command.UpdateCategoryCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update category")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteCategoryCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete category")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}

// parseID extracts the {id} path variable
func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}
