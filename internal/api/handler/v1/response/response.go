package response

import (
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type DrawResponse struct {
	Winner       domain.Contact `json:"winner"`
	GiftID       uint           `json:"giftId"`
	GiftName     string         `json:"giftName"`
	TotalTickets int            `json:"totalTickets"`
	EmailSent    bool           `json:"emailSent"`
}

func NewDrawResponse(r domain.DrawResult) DrawResponse {
	return DrawResponse{
		Winner:       r.Winner,
		GiftID:       r.GiftID,
		GiftName:     r.GiftName,
		TotalTickets: r.TotalTickets,
		EmailSent:    r.EmailSent,
	}
}
