package service

import (
	"context"
	"strings"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type itemService struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
}

func NewItemService(itemRepo repository.ItemRepository, userRepo repository.UserRepository) ItemService {
	return &itemService{itemRepo: itemRepo, userRepo: userRepo}
}

func (s *itemService) AddItem(ctx context.Context, item *domain.Item) error {
	if strings.TrimSpace(item.Title) == "" || item.OwnerID == "" {
		return domain.ErrInvalidInput
	}
	if item.PricePerDay < 0 {
		return domain.ErrInvalidInput
	}
	// New listings start available; only the booking engine flips the flag
	// afterwards.
	item.Available = true
	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner, err := s.userRepo.GetByID(ctx, item.OwnerID); err == nil {
		owner.PasswordHash = ""
		item.Owner = owner
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, actorID string, item *domain.Item) error {
	existing, err := s.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actorID {
		return domain.ErrUnauthorized
	}
	if strings.TrimSpace(item.Title) == "" || item.PricePerDay < 0 {
		return domain.ErrInvalidInput
	}

	// Availability is owned by the booking engine; an item edit never
	// touches it. Price changes do not affect existing bookings either,
	// since their total price was frozen at creation.
	existing.Title = item.Title
	existing.Description = item.Description
	existing.Category = item.Category
	existing.Location = item.Location
	existing.Images = item.Images
	existing.PricePerDay = item.PricePerDay
	return s.itemRepo.Update(ctx, existing)
}

func (s *itemService) DeleteItem(ctx context.Context, actorID, itemID string) error {
	existing, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if existing.OwnerID != actorID {
		return domain.ErrUnauthorized
	}
	// An unavailable item has a live booking on it; deleting it would strand
	// the escrowed credits.
	if !existing.Available {
		return domain.ErrItemUnavailable
	}
	return s.itemRepo.Delete(ctx, itemID)
}

func (s *itemService) SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items, err := s.itemRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

func (s *itemService) ListMyItems(ctx context.Context, ownerID string) ([]domain.Item, error) {
	items, err := s.itemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}
