package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository/dao"
)

var (
	ErrCartLineNotFound     = dao.ErrCartLineNotFound
	ErrCartLineNotOpen      = dao.ErrCartLineNotOpen
	ErrCartEmpty            = dao.ErrCartEmpty
	ErrLineQuantityExceeded = dao.ErrLineQuantityExceeded
)

type CartDAO interface {
	FindOpenByUser(ctx context.Context, userID uint) ([]dao.CartLine, error)
	FindByID(ctx context.Context, id uint) (dao.CartLine, error)
	UpsertOpenLine(ctx context.Context, userID, giftID uint, quantity, max int) (dao.CartLine, error)
	UpdateOpenQuantity(ctx context.Context, id uint, quantity int) (dao.CartLine, error)
	DeleteOpen(ctx context.Context, id uint) error
	DeleteOpenByUser(ctx context.Context, userID uint) (int64, error)
	MarkPurchased(ctx context.Context, userID uint) (int64, error)
	FindPurchased(ctx context.Context, filter dao.PurchaseFilter) ([]dao.CartLine, error)
	CountTicketsByGift(ctx context.Context) ([]dao.GiftTicketCount, error)
}

type CartRepository struct {
	dao CartDAO
}

func NewCartRepository(dao CartDAO) *CartRepository {
	return &CartRepository{
		dao: dao,
	}
}

func (r *CartRepository) FindOpenItems(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	lines, err := r.dao.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOpenByUser -> %w", err)
	}

	items := make([]domain.CartItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, cartLineToItem(l))
	}

	return items, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id uint) (domain.CartLine, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return cartLineToDomain(found), nil
}

func (r *CartRepository) AddToOpenLine(ctx context.Context, userID, giftID uint, quantity, max int) (domain.CartLine, error) {
	line, err := r.dao.UpsertOpenLine(ctx, userID, giftID, quantity, max)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("r.dao.UpsertOpenLine -> %w", err)
	}

	return cartLineToDomain(line), nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) (domain.CartLine, error) {
	line, err := r.dao.UpdateOpenQuantity(ctx, id, quantity)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("r.dao.UpdateOpenQuantity -> %w", err)
	}

	return cartLineToDomain(line), nil
}

func (r *CartRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.DeleteOpen(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteOpen -> %w", err)
	}

	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID uint) (int64, error) {
	deleted, err := r.dao.DeleteOpenByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteOpenByUser -> %w", err)
	}

	return deleted, nil
}

func (r *CartRepository) Purchase(ctx context.Context, userID uint) (int64, error) {
	purchased, err := r.dao.MarkPurchased(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MarkPurchased -> %w", err)
	}

	return purchased, nil
}

func (r *CartRepository) FindPurchasedByGift(ctx context.Context, giftID uint) ([]domain.PurchasedLine, error) {
	return r.findPurchased(ctx, dao.PurchaseFilter{GiftID: &giftID})
}

func (r *CartRepository) FindPurchasedByUser(ctx context.Context, userID uint) ([]domain.PurchasedLine, error) {
	return r.findPurchased(ctx, dao.PurchaseFilter{UserID: &userID})
}

func (r *CartRepository) FindAllPurchased(ctx context.Context) ([]domain.PurchasedLine, error) {
	return r.findPurchased(ctx, dao.PurchaseFilter{})
}

func (r *CartRepository) TicketsByGift(ctx context.Context) (map[uint]int, error) {
	counts, err := r.dao.CountTicketsByGift(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountTicketsByGift -> %w", err)
	}

	tickets := make(map[uint]int, len(counts))
	for _, c := range counts {
		tickets[c.GiftID] = c.Tickets
	}

	return tickets, nil
}

func (r *CartRepository) findPurchased(ctx context.Context, filter dao.PurchaseFilter) ([]domain.PurchasedLine, error) {
	lines, err := r.dao.FindPurchased(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPurchased -> %w", err)
	}

	purchased := make([]domain.PurchasedLine, 0, len(lines))
	for _, l := range lines {
		purchased = append(purchased, cartLineToPurchased(l))
	}

	return purchased, nil
}

func cartLineToDomain(l dao.CartLine) domain.CartLine {
	return domain.CartLine{
		ID:          l.ID,
		UserID:      l.UserID,
		GiftID:      l.GiftID,
		Quantity:    l.Quantity,
		IsPurchased: l.IsPurchased,
		CreatedAt:   l.CreatedAt,
	}
}

func cartLineToItem(l dao.CartLine) domain.CartItem {
	return domain.CartItem{
		ID:              l.ID,
		GiftID:          l.GiftID,
		GiftName:        l.Gift.Name,
		GiftDescription: l.Gift.Description,
		Picture:         l.Gift.Picture,
		Price:           l.Gift.Price,
		Quantity:        l.Quantity,
		TotalPrice:      l.Quantity * l.Gift.Price,
	}
}

func cartLineToPurchased(l dao.CartLine) domain.PurchasedLine {
	return domain.PurchasedLine{
		LineID:   l.ID,
		GiftID:   l.GiftID,
		GiftName: l.Gift.Name,
		Price:    l.Gift.Price,
		Quantity: l.Quantity,
		Buyer: domain.Contact{
			ID:    l.User.ID,
			Name:  l.User.Name,
			Email: l.User.Email,
			Phone: l.User.Phone,
		},
		CreatedAt: l.CreatedAt,
	}
}
