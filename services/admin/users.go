package admin

import (
	"context"
	"fmt"

	"quotecompare/models"
	"quotecompare/utils"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

func (a *DefaultAdminService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := a.Users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out, nil
}

// SetUserStatus blocks or unblocks an account in the identity provider, then
// mirrors the flag into the user document. The two writes are not atomic.
func (a *DefaultAdminService) SetUserStatus(ctx context.Context, uid, status string) error {
	var disabled bool
	switch status {
	case models.UserStatusActive:
	case models.UserStatusBlocked:
		disabled = true
	default:
		return ErrInvalidStatus
	}

	if a.Identity != nil {
		if _, err := a.Identity.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Disabled(disabled)); err != nil {
			if auth.IsUserNotFound(err) {
				return models.ErrUserNotFound
			}
			return fmt.Errorf("failed to update identity %s: %w", uid, err)
		}
	} else {
		utils.GetLogger().Warn("identity provider not configured, updating user document only", zap.String("uid", uid))
	}

	if err := a.Users.SetDisabled(ctx, uid, disabled); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	utils.GetLogger().Info("user status changed", zap.String("uid", uid), zap.String("status", status))
	return nil
}
