package service

import (
	"context"
	"log/slog"
)

// RelationshipMaintainer keeps denormalized back-references consistent.
// Today it has exactly one job: adding a freshly created character's id to
// the owning user's character list.
type RelationshipMaintainer struct {
	userRepo UserRepository
}

// NewRelationshipMaintainer creates a new relationship maintainer
func NewRelationshipMaintainer(userRepo UserRepository) *RelationshipMaintainer {
	return &RelationshipMaintainer{userRepo: userRepo}
}

// AttachCharacterToOwner adds characterID to the user's character list.
// The add is idempotent. The step is best-effort and non-transactional with
// the character create: a failure is logged and suppressed so the parent
// operation still succeeds.
func (m *RelationshipMaintainer) AttachCharacterToOwner(ctx context.Context, userID, characterID string) {
	if err := m.userRepo.AttachCharacter(ctx, userID, characterID); err != nil {
		slog.Warn("failed to attach character to owner",
			slog.String("user_id", userID),
			slog.String("character_id", characterID),
			slog.String("error", err.Error()),
		)
	}
}
