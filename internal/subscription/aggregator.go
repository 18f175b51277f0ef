package subscription

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vidtube/internal/user"
)

// Aggregator computes the derived relationship views. Every method is a
// pure read against the edge and account stores; nothing is cached.
type Aggregator struct {
	edges Repository
	users user.Repository
}

func NewAggregator(edges Repository, users user.Repository) *Aggregator {
	return &Aggregator{edges: edges, users: users}
}

// Subscribers lists the accounts following the channel.
func (a *Aggregator) Subscribers(ctx context.Context, channelID uuid.UUID) ([]AccountSummary, error) {
	return a.edges.SubscribersOf(ctx, channelID)
}

// SubscribedChannels lists the channels the account follows.
func (a *Aggregator) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]AccountSummary, error) {
	return a.edges.ChannelsOf(ctx, subscriberID)
}

// ChannelProfile resolves the channel by username and derives its counts
// plus the viewer's membership flag. viewer may be nil for anonymous
// requests, in which case isSubscribed is false.
func (a *Aggregator) ChannelProfile(ctx context.Context, username string, viewer *user.User) (*Profile, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	channel, err := a.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	subscribers, err := a.edges.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	subscribedTo, err := a.edges.CountSubscribedTo(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewer != nil {
		isSubscribed, err = a.edges.Exists(ctx, viewer.ID, channel.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		ID:                        channel.ID,
		Username:                  channel.Username,
		FullName:                  channel.FullName,
		Email:                     channel.Email,
		Avatar:                    channel.Avatar,
		CoverImage:                channel.CoverImage,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}
