package domain

import "time"

const (
	MinGiftPrice       = 5
	MaxGiftPrice       = 500
	MaxGiftNameLength  = 50
	IdentityNumberSize = 9
)

type Donor struct {
	ID             uint   `json:"id"`
	IdentityNumber string `json:"identity_number"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// DonorView is a donor with the gifts it contributed.
type DonorView struct {
	Donor
	Gifts []GiftView `json:"gifts"`
}

type DonorSearch struct {
	DonorName string
	GiftName  string
	Email     string
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Gift struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Picture     string    `json:"picture"`
	Price       int       `json:"price"`
	DonorID     uint      `json:"donor_id"`
	CategoryID  *uint     `json:"category_id"`
	WinnerID    *uint     `json:"winner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsDrawn reports whether the gift has reached its terminal state.
func (g Gift) IsDrawn() bool {
	return g.WinnerID != nil
}

// GiftView is a gift joined with the names of the entities it references.
type GiftView struct {
	Gift
	DonorName    string `json:"donor_name"`
	CategoryName string `json:"category_name"`
	WinnerName   string `json:"winner_name,omitempty"`
	WinnerEmail  string `json:"winner_email,omitempty"`
	WinnerPhone  string `json:"-"`
	TicketsSold  int    `json:"tickets_sold"`
}

type GiftSearch struct {
	GiftName     string
	DonorName    string
	CategoryName string
	MaxPrice     *int
	MinTickets   *int
}
