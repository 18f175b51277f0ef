package subscription

import (
	"context"

	"github.com/google/uuid"

	"vidtube/infrastructure"
	"vidtube/internal/user"
)

// Service owns the toggle write path. Reads live in Aggregator.
type Service struct {
	edges Repository
	users user.Repository
}

func NewService(edges Repository, users user.Repository) *Service {
	return &Service{edges: edges, users: users}
}

// Toggle subscribes the viewer to the channel, or unsubscribes if already
// subscribed, and reports the resulting state. The channel must resolve to
// an existing account; subscribing to yourself is rejected.
func (s *Service) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if subscriberID == channelID {
		return false, infrastructure.NewBadRequest("cannot subscribe to your own channel")
	}

	if _, err := s.users.ByID(ctx, channelID); err != nil {
		return false, infrastructure.NewNotFound("channel does not exist")
	}

	return s.edges.Toggle(ctx, subscriberID, channelID)
}
