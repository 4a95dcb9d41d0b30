package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCartLineNotFound     = errors.New("cart line not found")
	ErrCartLineNotOpen      = errors.New("cart line is already purchased")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrLineQuantityExceeded = errors.New("cart line quantity exceeds the allowed maximum")
)

type CartLine struct {
	ID uint `gorm:"primaryKey"`

	// At most one open line per (user, gift); purchased lines are outside the index.
	UserID      uint `gorm:"not null;uniqueIndex:idx_cart_lines_open,where:is_purchased = false"`
	User        User `gorm:"constraint:OnDelete:RESTRICT"`
	GiftID      uint `gorm:"not null;uniqueIndex:idx_cart_lines_open,where:is_purchased = false;index"`
	Gift        Gift `gorm:"constraint:OnDelete:RESTRICT"`
	Quantity    int  `gorm:"not null;check:quantity >= 1"`
	IsPurchased bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}

type PurchaseFilter struct {
	GiftID *uint
	UserID *uint
}

type CartDAO struct {
	db *gorm.DB
}

func NewCartDAO(db *gorm.DB) *CartDAO {
	return &CartDAO{
		db: db,
	}
}

func (d *CartDAO) FindOpenByUser(ctx context.Context, userID uint) ([]CartLine, error) {
	var lines []CartLine

	result := d.db.WithContext(ctx).
		Preload("Gift").
		Where("user_id = ? AND is_purchased = ?", userID, false).
		Order("id").
		Find(&lines)
	if result.Error != nil {
		return nil, result.Error
	}

	return lines, nil
}

func (d *CartDAO) FindByID(ctx context.Context, id uint) (CartLine, error) {
	var line CartLine

	result := d.db.WithContext(ctx).First(&line, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CartLine{}, ErrCartLineNotFound
		}

		return CartLine{}, result.Error
	}

	return line, nil
}

func findOpenLine(tx *gorm.DB, userID, giftID uint) (CartLine, error) {
	var line CartLine

	result := tx.Where("user_id = ? AND gift_id = ? AND is_purchased = ?", userID, giftID, false).
		First(&line)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CartLine{}, ErrCartLineNotFound
		}

		return CartLine{}, result.Error
	}

	return line, nil
}

// lockOpenGifts share-locks the given gifts until the transaction ends, so SetWinner on any
// of them waits for it. It fails when one of them already has a winner.
func lockOpenGifts(tx *gorm.DB, giftIDs []uint) error {
	var gifts []Gift

	result := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).
		Select("id", "winner_id").
		Where("id IN ?", giftIDs).
		Find(&gifts)
	if result.Error != nil {
		return result.Error
	}

	if len(gifts) < len(giftIDs) {
		return ErrGiftNotFound
	}
	for _, g := range gifts {
		if g.WinnerID != nil {
			return ErrGiftAlreadyDrawn
		}
	}

	return nil
}

// UpsertOpenLine inserts an open line or adds quantity to the existing one. The gift is checked
// for a winner under a share lock in the same transaction. The merge is skipped when the
// summed quantity would go above max.
func (d *CartDAO) UpsertOpenLine(ctx context.Context, userID, giftID uint, quantity, max int) (CartLine, error) {
	var upserted CartLine

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOpenGifts(tx, []uint{giftID}); err != nil {
			return err
		}

		now := time.Now()
		line := CartLine{
			UserID:    userID,
			GiftID:    giftID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}

		result := tx.Omit("User", "Gift").
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "gift_id"}},
				// Partial index inference needs the predicate as a literal, not a bind parameter.
				TargetWhere: clause.Where{Exprs: []clause.Expression{gorm.Expr("is_purchased = false")}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
					"updated_at": now,
				}),
				Where: clause.Where{Exprs: []clause.Expression{
					gorm.Expr("cart_lines.quantity + excluded.quantity <= ?", max),
				}},
			}).
			Create(&line)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrLineQuantityExceeded
		}

		found, err := findOpenLine(tx, userID, giftID)
		if err != nil {
			return err
		}
		upserted = found

		return nil
	})
	if err != nil {
		return CartLine{}, err
	}

	return upserted, nil
}

func (d *CartDAO) UpdateOpenQuantity(ctx context.Context, id uint, quantity int) (CartLine, error) {
	result := d.db.WithContext(ctx).
		Model(&CartLine{}).
		Where("id = ? AND is_purchased = ?", id, false).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return CartLine{}, result.Error
	}

	if result.RowsAffected == 0 {
		return CartLine{}, ErrCartLineNotOpen
	}

	return d.FindByID(ctx, id)
}

func (d *CartDAO) DeleteOpen(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND is_purchased = ?", id, false).
		Delete(&CartLine{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCartLineNotOpen
	}

	return nil
}

func (d *CartDAO) DeleteOpenByUser(ctx context.Context, userID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("user_id = ? AND is_purchased = ?", userID, false).
		Delete(&CartLine{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// MarkPurchased flips every open line of the user in one statement, so readers see
// either the whole open cart or none of it. Nothing is purchased when one of the gifts
// in the cart already has a winner.
func (d *CartDAO) MarkPurchased(ctx context.Context, userID uint) (int64, error) {
	var purchased int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var giftIDs []uint
		result := tx.Model(&CartLine{}).
			Where("user_id = ? AND is_purchased = ?", userID, false).
			Pluck("gift_id", &giftIDs)
		if result.Error != nil {
			return result.Error
		}

		if len(giftIDs) == 0 {
			return ErrCartEmpty
		}

		if err := lockOpenGifts(tx, giftIDs); err != nil {
			return err
		}

		// Lines added after the gifts were locked stay open.
		result = tx.Model(&CartLine{}).
			Where("user_id = ? AND is_purchased = ? AND gift_id IN ?", userID, false, giftIDs).
			Updates(map[string]interface{}{
				"is_purchased": true,
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrCartEmpty
		}

		purchased = result.RowsAffected

		return nil
	})
	if err != nil {
		return 0, err
	}

	return purchased, nil
}

func (d *CartDAO) FindPurchased(ctx context.Context, filter PurchaseFilter) ([]CartLine, error) {
	var lines []CartLine

	query := d.db.WithContext(ctx).
		Preload("User").
		Preload("Gift").
		Where("is_purchased = ?", true)

	if filter.GiftID != nil {
		query = query.Where("gift_id = ?", *filter.GiftID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	result := query.Order("id").Find(&lines)
	if result.Error != nil {
		return nil, result.Error
	}

	return lines, nil
}

type GiftTicketCount struct {
	GiftID  uint
	Tickets int
}

func (d *CartDAO) CountTicketsByGift(ctx context.Context) ([]GiftTicketCount, error) {
	var counts []GiftTicketCount

	result := d.db.WithContext(ctx).
		Model(&CartLine{}).
		Select("gift_id, COALESCE(SUM(quantity), 0) AS tickets").
		Where("is_purchased = ?", true).
		Group("gift_id").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}
