package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

type CatalogRepository interface {
	CreateDonor(ctx context.Context, donor domain.Donor) (domain.Donor, error)
	FindDonorByID(ctx context.Context, id uint) (domain.Donor, error)
	ListDonors(ctx context.Context) ([]domain.Donor, error)
	FindDonorView(ctx context.Context, id uint) (domain.DonorView, error)
	FindDonors(ctx context.Context, search domain.DonorSearch) ([]domain.DonorView, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateGift(ctx context.Context, gift domain.Gift) (domain.Gift, error)
	GiftNameExists(ctx context.Context, name string) (bool, error)
	FindGiftByID(ctx context.Context, id uint) (domain.GiftView, error)
	FindGifts(ctx context.Context, search domain.GiftSearch) ([]domain.GiftView, error)
}

type TicketCounter interface {
	TicketsByGift(ctx context.Context) (map[uint]int, error)
}

type CatalogService struct {
	repo    CatalogRepository
	tickets TicketCounter
}

func NewCatalogService(repo CatalogRepository, tickets TicketCounter) *CatalogService {
	return &CatalogService{
		repo:    repo,
		tickets: tickets,
	}
}

func (s *CatalogService) ListGifts(ctx context.Context) ([]domain.GiftView, error) {
	return s.findGifts(ctx, domain.GiftSearch{})
}

func (s *CatalogService) GetGift(ctx context.Context, id uint) (domain.GiftView, error) {
	gift, err := s.repo.FindGiftByID(ctx, id)
	if err != nil {
		return domain.GiftView{}, fmt.Errorf("s.repo.FindGiftByID -> %w", err)
	}

	tickets, err := s.tickets.TicketsByGift(ctx)
	if err != nil {
		return domain.GiftView{}, fmt.Errorf("s.tickets.TicketsByGift -> %w", err)
	}
	gift.TicketsSold = tickets[gift.ID]

	return gift, nil
}

// SearchGifts is the public search by category name and price ceiling.
func (s *CatalogService) SearchGifts(ctx context.Context, categoryName string, maxPrice *int) ([]domain.GiftView, error) {
	return s.findGifts(ctx, domain.GiftSearch{
		CategoryName: categoryName,
		MaxPrice:     maxPrice,
	})
}

// ManagerSearchGifts filters by gift name, donor name and a minimum of purchased tickets.
func (s *CatalogService) ManagerSearchGifts(ctx context.Context, giftName, donorName string, minTickets *int) ([]domain.GiftView, error) {
	return s.findGifts(ctx, domain.GiftSearch{
		GiftName:   giftName,
		DonorName:  donorName,
		MinTickets: minTickets,
	})
}

func (s *CatalogService) findGifts(ctx context.Context, search domain.GiftSearch) ([]domain.GiftView, error) {
	gifts, err := s.repo.FindGifts(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindGifts -> %w", err)
	}

	tickets, err := s.tickets.TicketsByGift(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.TicketsByGift -> %w", err)
	}

	result := make([]domain.GiftView, 0, len(gifts))
	for _, g := range gifts {
		g.TicketsSold = tickets[g.ID]
		if search.MinTickets != nil && g.TicketsSold < *search.MinTickets {
			continue
		}
		result = append(result, g)
	}

	return result, nil
}

func (s *CatalogService) CreateDonor(ctx context.Context, donor domain.Donor) (domain.Donor, error) {
	created, err := s.repo.CreateDonor(ctx, donor)
	if err != nil {
		return domain.Donor{}, fmt.Errorf("s.repo.CreateDonor -> %w", err)
	}

	zap.L().Info("donor created", zap.Uint("donor_id", created.ID))

	return created, nil
}

func (s *CatalogService) ListDonors(ctx context.Context) ([]domain.Donor, error) {
	donors, err := s.repo.ListDonors(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListDonors -> %w", err)
	}

	return donors, nil
}

func (s *CatalogService) GetDonor(ctx context.Context, id uint) (domain.DonorView, error) {
	donor, err := s.repo.FindDonorView(ctx, id)
	if err != nil {
		return domain.DonorView{}, fmt.Errorf("s.repo.FindDonorView -> %w", err)
	}

	tickets, err := s.tickets.TicketsByGift(ctx)
	if err != nil {
		return domain.DonorView{}, fmt.Errorf("s.tickets.TicketsByGift -> %w", err)
	}
	fillTicketsSold(donor.Gifts, tickets)

	return donor, nil
}

// SearchDonors filters donors by name, email and the name of a gift they contributed.
func (s *CatalogService) SearchDonors(ctx context.Context, search domain.DonorSearch) ([]domain.DonorView, error) {
	donors, err := s.repo.FindDonors(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindDonors -> %w", err)
	}

	tickets, err := s.tickets.TicketsByGift(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.TicketsByGift -> %w", err)
	}
	for _, d := range donors {
		fillTicketsSold(d.Gifts, tickets)
	}

	return donors, nil
}

func fillTicketsSold(gifts []domain.GiftView, tickets map[uint]int) {
	for i := range gifts {
		gifts[i].TicketsSold = tickets[gifts[i].ID]
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListCategories -> %w", err)
	}

	return categories, nil
}

// CreateGift requires an existing donor; the category is optional but must exist when set.
func (s *CatalogService) CreateGift(ctx context.Context, gift domain.Gift) (domain.Gift, error) {
	if gift.Price < domain.MinGiftPrice || gift.Price > domain.MaxGiftPrice {
		return domain.Gift{}, ErrInvalidGiftPrice
	}

	exists, err := s.repo.GiftNameExists(ctx, gift.Name)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.GiftNameExists -> %w", err)
	}
	if exists {
		return domain.Gift{}, ErrGiftNameExists
	}

	if _, err = s.repo.FindDonorByID(ctx, gift.DonorID); err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.FindDonorByID -> %w", err)
	}

	if gift.CategoryID != nil {
		if _, err = s.repo.FindCategoryByID(ctx, *gift.CategoryID); err != nil {
			return domain.Gift{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
		}
	}

	gift.WinnerID = nil
	created, err := s.repo.CreateGift(ctx, gift)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.CreateGift -> %w", err)
	}

	zap.L().Info("gift created", zap.Uint("gift_id", created.ID), zap.String("name", created.Name))

	return created, nil
}
