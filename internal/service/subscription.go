package service

import (
	"context"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
)

// SubscriptionService handles "follow an author".
type SubscriptionService struct {
	server        *server.Server
	users         UserStore
	subscriptions SubscriptionStore
	present       presenter
}

func NewSubscriptionService(s *server.Server, stores Stores) *SubscriptionService {
	return &SubscriptionService{
		server:        s,
		users:         stores.Users,
		subscriptions: stores.Subscriptions,
		present:       presenter{stores: stores, storage: s.Storage},
	}
}

// Subscribe follows authorID and returns the author card with up to
// recipesLimit recipes (all when recipesLimit <= 0).
func (s *SubscriptionService) Subscribe(ctx context.Context, user *model.User, authorID int64, recipesLimit int) (*model.AuthorCard, error) {
	if user.ID == authorID {
		return nil, errs.NewBadRequestError("You cannot subscribe to yourself", true, errs.Code("SELF_SUBSCRIPTION"), nil)
	}

	author, err := s.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	created, err := s.subscriptions.CreateSubscription(ctx, user.ID, authorID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, errs.NewConflictError("You are already subscribed to this author", true, errs.Code("SUBSCRIPTION_ALREADY_EXISTS"))
	}

	cards, err := s.present.authorCards(ctx, user.ID, []model.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// Unsubscribe stops following authorID.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, user *model.User, authorID int64) error {
	if _, err := s.users.GetUserByID(ctx, authorID); err != nil {
		return err
	}

	deleted, err := s.subscriptions.DeleteSubscription(ctx, user.ID, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewBadRequestError("You are not subscribed to this author", true, errs.Code("SUBSCRIPTION_NOT_FOUND"), nil)
	}
	return nil
}

// List returns one page of the authors user follows.
func (s *SubscriptionService) List(ctx context.Context, user *model.User, page model.Pagination, recipesLimit int) ([]model.AuthorCard, int, error) {
	authors, total, err := s.subscriptions.ListSubscribedAuthors(ctx, user.ID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	cards, err := s.present.authorCards(ctx, user.ID, authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}
