package domain

import "time"

type DrawResult struct {
	GiftID       uint      `json:"gift_id"`
	GiftName     string    `json:"gift_name"`
	Winner       Contact   `json:"winner"`
	TotalTickets int       `json:"total_tickets"`
	EmailSent    bool      `json:"email_sent"`
	DrawnAt      time.Time `json:"drawn_at"`
}
