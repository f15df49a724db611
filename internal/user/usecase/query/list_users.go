package query

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Limit  int
	Offset int
}

// ListUsersResult holds a page of users together with the total count
type ListUsersResult struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) (*ListUsersResult, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	users, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return &ListUsersResult{Users: users, Total: total}, nil
}
