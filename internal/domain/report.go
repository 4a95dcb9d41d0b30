package domain

import (
	"strings"
	"time"
)

type TopGiftCriteria string

const (
	CriteriaExpensive TopGiftCriteria = "expensive"
	CriteriaPurchased TopGiftCriteria = "purchased"
)

// ParseTopGiftCriteria accepts the criteria case-insensitively.
func ParseTopGiftCriteria(s string) (TopGiftCriteria, bool) {
	switch c := TopGiftCriteria(strings.ToLower(strings.TrimSpace(s))); c {
	case CriteriaExpensive, CriteriaPurchased:
		return c, true
	default:
		return "", false
	}
}

type RevenueSummary struct {
	TotalRevenue      int `json:"total_revenue"`
	TotalTicketsSold  int `json:"total_tickets_sold"`
	TotalParticipants int `json:"total_participants"`
}

type WinnerRow struct {
	GiftID       uint   `json:"gift_id"`
	GiftName     string `json:"gift_name"`
	WinnerName   string `json:"winner_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

type GiftStats struct {
	GiftID                uint   `json:"gift_id"`
	GiftName              string `json:"gift_name"`
	Price                 int    `json:"price"`
	TotalTicketsPurchased int    `json:"total_tickets_purchased"`
	TotalEarned           int    `json:"total_earned"`
}

type PurchaserItem struct {
	GiftID       uint      `json:"gift_id"`
	GiftName     string    `json:"gift_name"`
	Quantity     int       `json:"quantity"`
	PricePerUnit int       `json:"price_per_unit"`
	TotalPrice   int       `json:"total_price"`
	PurchaseDate time.Time `json:"purchase_date"`
}

type PurchaserDetails struct {
	UserID                uint            `json:"user_id"`
	Name                  string          `json:"name"`
	Email                 string          `json:"email"`
	Phone                 string          `json:"phone"`
	TotalTicketsPurchased int             `json:"total_tickets_purchased"`
	GrandTotalSpent       int             `json:"grand_total_spent"`
	PurchaseHistory       []PurchaserItem `json:"purchase_history"`
}

type GiftPurchase struct {
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
	Quantity   int    `json:"quantity"`
}

type GiftPurchasesSummary struct {
	GiftID                uint           `json:"gift_id"`
	GiftName              string         `json:"gift_name"`
	Purchasers            []GiftPurchase `json:"purchasers"`
	TotalTicketsPurchased int            `json:"total_tickets_purchased"`
	TotalEarned           int            `json:"total_earned"`
}
