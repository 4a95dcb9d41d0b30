package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrUnknownCriteria = errors.New("unknown top gift criteria")

type RevenueTotals struct {
	TotalRevenue      int
	TotalTicketsSold  int
	TotalParticipants int
}

type GiftStatsRow struct {
	GiftID       uint
	GiftName     string
	Price        int
	TotalTickets int
	TotalEarned  int
}

type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

func (d *ReportDAO) RevenueTotals(ctx context.Context) (RevenueTotals, error) {
	var totals RevenueTotals

	result := d.db.WithContext(ctx).
		Table("cart_lines").
		Select(`COALESCE(SUM(cart_lines.quantity * gifts.price), 0) AS total_revenue,
			COALESCE(SUM(cart_lines.quantity), 0) AS total_tickets_sold,
			COUNT(DISTINCT cart_lines.user_id) AS total_participants`).
		Joins("JOIN gifts ON gifts.id = cart_lines.gift_id").
		Where("cart_lines.is_purchased = ?", true).
		Scan(&totals)
	if result.Error != nil {
		return RevenueTotals{}, result.Error
	}

	return totals, nil
}

var topGiftOrder = map[string]string{
	"expensive": "gifts.price DESC, total_earned DESC, gifts.id ASC",
	"purchased": "total_tickets DESC, gifts.price DESC, gifts.id ASC",
}

// TopGift returns nil when no line has been purchased yet.
func (d *ReportDAO) TopGift(ctx context.Context, criteria string) (*GiftStatsRow, error) {
	order, ok := topGiftOrder[criteria]
	if !ok {
		return nil, ErrUnknownCriteria
	}

	var rows []GiftStatsRow

	result := d.db.WithContext(ctx).
		Table("cart_lines").
		Select(`gifts.id AS gift_id, gifts.name AS gift_name, gifts.price AS price,
			SUM(cart_lines.quantity) AS total_tickets,
			SUM(cart_lines.quantity * gifts.price) AS total_earned`).
		Joins("JOIN gifts ON gifts.id = cart_lines.gift_id").
		Where("cart_lines.is_purchased = ?", true).
		Group("gifts.id, gifts.name, gifts.price").
		Order(order).
		Limit(1).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}
