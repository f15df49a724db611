package command

import (
	"fmt"
	"time"

	"github.com/ledgerkeep/inventory/internal/user/domain"
)

// ChangeRoleCommand represents the command to change a user's role
type ChangeRoleCommand struct {
	UserID uint
	Role   string
}

// ChangeRoleHandler grants or revokes staff privilege
type ChangeRoleHandler struct {
	repo domain.UserRepository
}

// NewChangeRoleHandler creates a new change role handler
func NewChangeRoleHandler(repo domain.UserRepository) *ChangeRoleHandler {
	return &ChangeRoleHandler{repo: repo}
}

// Handle executes the change role command
func (h *ChangeRoleHandler) Handle(cmd ChangeRoleCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if cmd.Role != domain.RoleUser && cmd.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("invalid role")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	user.Role = cmd.Role
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
