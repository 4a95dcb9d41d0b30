package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository/dao"
)

var ErrUnknownCriteria = dao.ErrUnknownCriteria

type ReportDAO interface {
	RevenueTotals(ctx context.Context) (dao.RevenueTotals, error)
	TopGift(ctx context.Context, criteria string) (*dao.GiftStatsRow, error)
}

type ReportRepository struct {
	dao ReportDAO
}

func NewReportRepository(dao ReportDAO) *ReportRepository {
	return &ReportRepository{
		dao: dao,
	}
}

func (r *ReportRepository) RevenueSummary(ctx context.Context) (domain.RevenueSummary, error) {
	totals, err := r.dao.RevenueTotals(ctx)
	if err != nil {
		return domain.RevenueSummary{}, fmt.Errorf("r.dao.RevenueTotals -> %w", err)
	}

	return domain.RevenueSummary{
		TotalRevenue:      totals.TotalRevenue,
		TotalTicketsSold:  totals.TotalTicketsSold,
		TotalParticipants: totals.TotalParticipants,
	}, nil
}

func (r *ReportRepository) TopGift(ctx context.Context, criteria domain.TopGiftCriteria) (*domain.GiftStats, error) {
	row, err := r.dao.TopGift(ctx, string(criteria))
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopGift -> %w", err)
	}

	if row == nil {
		return nil, nil
	}

	return &domain.GiftStats{
		GiftID:                row.GiftID,
		GiftName:              row.GiftName,
		Price:                 row.Price,
		TotalTicketsPurchased: row.TotalTickets,
		TotalEarned:           row.TotalEarned,
	}, nil
}
