package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository"
)

type ReportRepository interface {
	RevenueSummary(ctx context.Context) (domain.RevenueSummary, error)
	TopGift(ctx context.Context, criteria domain.TopGiftCriteria) (*domain.GiftStats, error)
}

type PurchaseHistoryReader interface {
	FindPurchasedByUser(ctx context.Context, userID uint) ([]domain.PurchasedLine, error)
	FindAllPurchased(ctx context.Context) ([]domain.PurchasedLine, error)
}

type DrawnGiftReader interface {
	FindDrawnGifts(ctx context.Context) ([]domain.GiftView, error)
}

type ReportService struct {
	repo      ReportRepository
	purchases PurchaseHistoryReader
	gifts     DrawnGiftReader
}

func NewReportService(repo ReportRepository, purchases PurchaseHistoryReader, gifts DrawnGiftReader) *ReportService {
	return &ReportService{
		repo:      repo,
		purchases: purchases,
		gifts:     gifts,
	}
}

func (s *ReportService) RevenueSummary(ctx context.Context) (domain.RevenueSummary, error) {
	summary, err := s.repo.RevenueSummary(ctx)
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("s.repo.RevenueSummary -> %w", err)
	}

	return summary, nil
}

// Winners lists every drawn gift with its winner's contact details.
func (s *ReportService) Winners(ctx context.Context) ([]domain.WinnerRow, error) {
	gifts, err := s.gifts.FindDrawnGifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.gifts.FindDrawnGifts -> %w", err)
	}

	rows := make([]domain.WinnerRow, 0, len(gifts))
	for _, g := range gifts {
		rows = append(rows, domain.WinnerRow{
			GiftID:       g.ID,
			GiftName:     g.Name,
			WinnerName:   g.WinnerName,
			ContactEmail: g.WinnerEmail,
			ContactPhone: g.WinnerPhone,
		})
	}

	return rows, nil
}

// TopGift returns nil, nil when nothing has been purchased yet.
func (s *ReportService) TopGift(ctx context.Context, criteria string) (*domain.GiftStats, error) {
	c, ok := domain.ParseTopGiftCriteria(criteria)
	if !ok {
		return nil, ErrInvalidCriteria
	}

	stats, err := s.repo.TopGift(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownCriteria) {
			return nil, ErrInvalidCriteria
		}

		return nil, fmt.Errorf("s.repo.TopGift -> %w", err)
	}

	if stats == nil {
		zap.L().Info("no purchases for top gift", zap.String("criteria", string(c)))
	}

	return stats, nil
}

func (s *ReportService) PurchaserDetails(ctx context.Context, userID uint) (domain.PurchaserDetails, error) {
	lines, err := s.purchases.FindPurchasedByUser(ctx, userID)
	if err != nil {
		return domain.PurchaserDetails{}, fmt.Errorf("s.purchases.FindPurchasedByUser -> %w", err)
	}

	if len(lines) == 0 {
		return domain.PurchaserDetails{}, ErrPurchasesNotFound
	}

	return toPurchaserDetails(lines), nil
}

// AllPurchasers returns one summary per user with purchases, ordered by user id.
func (s *ReportService) AllPurchasers(ctx context.Context) ([]domain.PurchaserDetails, error) {
	lines, err := s.purchases.FindAllPurchased(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.purchases.FindAllPurchased -> %w", err)
	}

	byUser := make(map[uint][]domain.PurchasedLine)
	for _, l := range lines {
		byUser[l.Buyer.ID] = append(byUser[l.Buyer.ID], l)
	}

	userIDs := make([]uint, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	result := make([]domain.PurchaserDetails, 0, len(userIDs))
	for _, id := range userIDs {
		result = append(result, toPurchaserDetails(byUser[id]))
	}

	return result, nil
}

func toPurchaserDetails(lines []domain.PurchasedLine) domain.PurchaserDetails {
	buyer := lines[0].Buyer
	details := domain.PurchaserDetails{
		UserID:          buyer.ID,
		Name:            buyer.Name,
		Email:           buyer.Email,
		Phone:           buyer.Phone,
		PurchaseHistory: make([]domain.PurchaserItem, 0, len(lines)),
	}

	for _, l := range lines {
		details.PurchaseHistory = append(details.PurchaseHistory, domain.PurchaserItem{
			GiftID:       l.GiftID,
			GiftName:     l.GiftName,
			Quantity:     l.Quantity,
			PricePerUnit: l.Price,
			TotalPrice:   l.Total(),
			PurchaseDate: l.CreatedAt,
		})
		details.TotalTicketsPurchased += l.Quantity
		details.GrandTotalSpent += l.Total()
	}

	return details
}
