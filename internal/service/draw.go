package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/pkg/lottery"
)

type DrawGiftRepository interface {
	FindGiftByID(ctx context.Context, id uint) (domain.GiftView, error)
	SetWinner(ctx context.Context, giftID, userID uint) error
}

type PurchaseReader interface {
	FindPurchasedByGift(ctx context.Context, giftID uint) ([]domain.PurchasedLine, error)
}

type Notifier interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type DrawAnnouncer interface {
	Announce(result domain.DrawResult)
}

const winnerEmailSubject = "Congratulations! You won the raffle"

type DrawService struct {
	gifts     DrawGiftRepository
	purchases PurchaseReader
	notifier  Notifier
	announcer DrawAnnouncer
}

func NewDrawService(gifts DrawGiftRepository, purchases PurchaseReader, notifier Notifier, announcer DrawAnnouncer) *DrawService {
	return &DrawService{
		gifts:     gifts,
		purchases: purchases,
		notifier:  notifier,
		announcer: announcer,
	}
}

// DrawWinner picks one winner for the gift, weighted by purchased tickets. The winner is
// stored before the notification is attempted; a failed notification only clears EmailSent.
func (s *DrawService) DrawWinner(ctx context.Context, giftID uint) (domain.DrawResult, error) {
	gift, err := s.gifts.FindGiftByID(ctx, giftID)
	if err != nil {
		return domain.DrawResult{}, fmt.Errorf("s.gifts.FindGiftByID -> %w", err)
	}
	if gift.IsDrawn() {
		return domain.DrawResult{}, ErrGiftAlreadyDrawn
	}

	lines, err := s.purchases.FindPurchasedByGift(ctx, giftID)
	if err != nil {
		return domain.DrawResult{}, fmt.Errorf("s.purchases.FindPurchasedByGift -> %w", err)
	}

	buyers := make(map[uint]domain.Contact, len(lines))
	entries := make([]lottery.Entry, 0, len(lines))
	for _, l := range lines {
		buyers[l.Buyer.ID] = l.Buyer
		entries = append(entries, lottery.Entry{HolderID: l.Buyer.ID, Tickets: l.Quantity})
	}

	pool := lottery.BuildPool(entries)
	winnerID, err := lottery.Draw(pool)
	if err != nil {
		if errors.Is(err, lottery.ErrEmptyPool) {
			zap.L().Warn("draw aborted, no purchases", zap.Uint("gift_id", giftID))
			return domain.DrawResult{}, ErrNoTicketsPurchased
		}

		return domain.DrawResult{}, fmt.Errorf("lottery.Draw -> %w", err)
	}

	if err = s.gifts.SetWinner(ctx, giftID, winnerID); err != nil {
		return domain.DrawResult{}, fmt.Errorf("s.gifts.SetWinner -> %w", err)
	}

	winner := buyers[winnerID]
	zap.L().Info("winner drawn",
		zap.Uint("gift_id", giftID),
		zap.Uint("winner_id", winnerID),
		zap.Int("winner_tickets", pool.TicketsOf(winnerID)),
		zap.Int("total_tickets", pool.TotalTickets()),
		zap.Int("holders", pool.Holders()),
	)

	result := domain.DrawResult{
		GiftID:       gift.ID,
		GiftName:     gift.Name,
		Winner:       winner,
		TotalTickets: pool.TotalTickets(),
		DrawnAt:      time.Now(),
	}

	err = s.notifier.SendEmail(ctx, winner.Email, winnerEmailSubject, winnerEmailBody(winner.Name, gift.Name))
	if err != nil {
		zap.L().Error("winner email failed, winner is kept",
			zap.Uint("gift_id", giftID),
			zap.String("winner_email", winner.Email),
			zap.Error(err),
		)
	} else {
		result.EmailSent = true
	}

	if s.announcer != nil {
		s.announcer.Announce(result)
	}

	return result, nil
}

func winnerEmailBody(winnerName, giftName string) string {
	return fmt.Sprintf(`<div style="width: 100%%; background-color: #f9f9f9; padding: 50px 0; font-family: Arial, sans-serif;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px; border: 2px solid #d4af37; border-radius: 10px; text-align: center;">
    <h1>Congratulations %s!</h1>
    <h2>We are happy to tell you that you won</h2>
    <h1>%s</h1>
    <h3>A representative will contact you soon.</h3>
    <hr>
    <h4>The raffle team</h4>
  </div>
</div>`, html.EscapeString(winnerName), html.EscapeString(giftName))
}
