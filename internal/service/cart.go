package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

type CartRepository interface {
	FindOpenItems(ctx context.Context, userID uint) ([]domain.CartItem, error)
	FindByID(ctx context.Context, id uint) (domain.CartLine, error)
	AddToOpenLine(ctx context.Context, userID, giftID uint, quantity, max int) (domain.CartLine, error)
	UpdateQuantity(ctx context.Context, id uint, quantity int) (domain.CartLine, error)
	Delete(ctx context.Context, id uint) error
	Clear(ctx context.Context, userID uint) (int64, error)
	Purchase(ctx context.Context, userID uint) (int64, error)
	FindPurchasedByGift(ctx context.Context, giftID uint) ([]domain.PurchasedLine, error)
}

type GiftFinder interface {
	FindGiftByID(ctx context.Context, id uint) (domain.GiftView, error)
}

// CartService is the cart ledger. Every operation takes the acting user explicitly.
type CartService struct {
	repo        CartRepository
	gifts       GiftFinder
	maxQuantity int
}

func NewCartService(repo CartRepository, gifts GiftFinder, maxQuantity int) *CartService {
	if maxQuantity <= 0 {
		maxQuantity = domain.MaxLineQuantity
	}

	return &CartService{
		repo:        repo,
		gifts:       gifts,
		maxQuantity: maxQuantity,
	}
}

func (s *CartService) GetOpenCart(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	items, err := s.repo.FindOpenItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOpenItems -> %w", err)
	}

	return items, nil
}

// AddToCart merges into the user's open line for the gift, creating it if needed.
func (s *CartService) AddToCart(ctx context.Context, userID, giftID uint, quantity int) (domain.CartLine, error) {
	if !s.validQuantity(quantity) {
		return domain.CartLine{}, ErrInvalidQuantity
	}

	gift, err := s.gifts.FindGiftByID(ctx, giftID)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("s.gifts.FindGiftByID -> %w", err)
	}
	if gift.IsDrawn() {
		return domain.CartLine{}, ErrGiftAlreadyDrawn
	}

	line, err := s.repo.AddToOpenLine(ctx, userID, giftID, quantity, s.maxQuantity)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("s.repo.AddToOpenLine -> %w", err)
	}

	zap.L().Info("added to cart",
		zap.Uint("user_id", userID),
		zap.Uint("gift_id", giftID),
		zap.Int("quantity", line.Quantity),
	)

	return line, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, lineID, userID uint, quantity int) (domain.CartLine, error) {
	line, err := s.ownedLine(ctx, lineID, userID)
	if err != nil {
		return domain.CartLine{}, err
	}

	if !s.validQuantity(quantity) {
		return domain.CartLine{}, ErrInvalidQuantity
	}
	if !line.IsOpen() {
		return domain.CartLine{}, ErrCartLineNotOpen
	}

	updated, err := s.repo.UpdateQuantity(ctx, lineID, quantity)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("s.repo.UpdateQuantity -> %w", err)
	}

	return updated, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, lineID, userID uint) error {
	line, err := s.ownedLine(ctx, lineID, userID)
	if err != nil {
		return err
	}

	if !line.IsOpen() {
		zap.L().Warn("remove rejected, cart line already purchased", zap.Uint("cart_line_id", lineID))
		return ErrCartLineNotOpen
	}

	if err = s.repo.Delete(ctx, lineID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	deleted, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.Clear -> %w", err)
	}

	zap.L().Info("cart cleared", zap.Uint("user_id", userID), zap.Int64("lines", deleted))

	return nil
}

// Purchase commits every open line of the user at once.
func (s *CartService) Purchase(ctx context.Context, userID uint) error {
	purchased, err := s.repo.Purchase(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.Purchase -> %w", err)
	}

	zap.L().Info("cart purchased", zap.Uint("user_id", userID), zap.Int64("lines", purchased))

	return nil
}

func (s *CartService) GetPurchasesByGift(ctx context.Context, giftID uint) (domain.GiftPurchasesSummary, error) {
	gift, err := s.gifts.FindGiftByID(ctx, giftID)
	if err != nil {
		return domain.GiftPurchasesSummary{}, fmt.Errorf("s.gifts.FindGiftByID -> %w", err)
	}

	lines, err := s.repo.FindPurchasedByGift(ctx, giftID)
	if err != nil {
		return domain.GiftPurchasesSummary{}, fmt.Errorf("s.repo.FindPurchasedByGift -> %w", err)
	}

	summary := domain.GiftPurchasesSummary{
		GiftID:     gift.ID,
		GiftName:   gift.Name,
		Purchasers: make([]domain.GiftPurchase, 0, len(lines)),
	}
	for _, l := range lines {
		summary.Purchasers = append(summary.Purchasers, domain.GiftPurchase{
			BuyerName:  l.Buyer.Name,
			BuyerEmail: l.Buyer.Email,
			Quantity:   l.Quantity,
		})
		summary.TotalTicketsPurchased += l.Quantity
		summary.TotalEarned += l.Total()
	}

	return summary, nil
}

// ownedLine loads a cart line and rejects access by anyone but its owner. Line ids are
// global, so this runs on every mutating call.
func (s *CartService) ownedLine(ctx context.Context, lineID, userID uint) (domain.CartLine, error) {
	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !line.OwnedBy(userID) {
		zap.L().Warn("cart line accessed by another user",
			zap.Uint("cart_line_id", lineID),
			zap.Uint("owner_id", line.UserID),
			zap.Uint("user_id", userID),
		)
		return domain.CartLine{}, ErrCartLineForbidden
	}

	return line, nil
}

func (s *CartService) validQuantity(quantity int) bool {
	return quantity >= domain.MinLineQuantity && quantity <= s.maxQuantity
}
