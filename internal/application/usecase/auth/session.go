// Package auth contains the account and session use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
)

// SessionOutput is returned by every use case that signs a user in.
type SessionOutput struct {
	Session adapter.Session
	User    *entity.User
}

func startSession(ctx context.Context, tokens adapter.TokenIssuer, user *entity.User) (*SessionOutput, error) {
	session, err := tokens.Issue(ctx, adapter.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return &SessionOutput{Session: *session, User: user}, nil
}
