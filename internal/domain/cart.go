package domain

import "time"

const (
	MinLineQuantity = 1
	MaxLineQuantity = 100
)

type CartLine struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	GiftID      uint      `json:"gift_id"`
	Quantity    int       `json:"quantity"`
	IsPurchased bool      `json:"is_purchased"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l CartLine) IsOpen() bool {
	return !l.IsPurchased
}

func (l CartLine) OwnedBy(userID uint) bool {
	return l.UserID == userID
}

// CartItem is an open cart line joined with its gift.
type CartItem struct {
	ID              uint   `json:"id"`
	GiftID          uint   `json:"gift_id"`
	GiftName        string `json:"gift_name"`
	GiftDescription string `json:"gift_description"`
	Picture         string `json:"picture"`
	Price           int    `json:"price"`
	Quantity        int    `json:"quantity"`
	TotalPrice      int    `json:"total_price"`
}

// PurchasedLine is a purchased cart line joined with its gift and owner,
// the row shape every report and the draw are computed from.
type PurchasedLine struct {
	LineID    uint
	GiftID    uint
	GiftName  string
	Price     int
	Quantity  int
	Buyer     Contact
	CreatedAt time.Time
}

func (l PurchasedLine) Total() int {
	return l.Quantity * l.Price
}
