package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrGiftNotFound       = errors.New("gift not found")
	ErrGiftNameExists     = errors.New("gift name already exists")
	ErrGiftAlreadyDrawn   = errors.New("a draw has already been performed for this gift")
	ErrDonorNotFound      = errors.New("donor not found")
	ErrDonorExists        = errors.New("donor with the same identity number, name or email already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category name already exists")
)

type Donor struct {
	ID             uint   `gorm:"primaryKey"`
	IdentityNumber string `gorm:"size:9;unique;not null"`
	Name           string `gorm:"size:50;unique;not null"`
	Email          string `gorm:"unique;not null"`
	Phone          string `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Gift struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:50;unique;not null"`
	Description string    `gorm:"not null"`
	Picture     string    `gorm:"not null"`
	Price       int       `gorm:"not null;check:price >= 5 AND price <= 500"`
	DonorID     uint      `gorm:"not null;index"`
	Donor       Donor     `gorm:"constraint:OnDelete:RESTRICT"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL"`
	WinnerID    *uint     `gorm:"index"`
	Winner      *User     `gorm:"foreignKey:WinnerID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GiftFilter struct {
	GiftName     string
	DonorName    string
	CategoryName string
	MaxPrice     *int
}

type DonorFilter struct {
	DonorName string
	GiftName  string
	Email     string
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) InsertDonor(ctx context.Context, donor Donor) (Donor, error) {
	result := d.db.WithContext(ctx).Create(&donor)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_donors_identity_number", "donors.identity_number") ||
			isUniqueViolation(result.Error, "uni_donors_name", "donors.name") ||
			isUniqueViolation(result.Error, "uni_donors_email", "donors.email") {
			return Donor{}, ErrDonorExists
		}

		return Donor{}, result.Error
	}

	return donor, nil
}

func (d *CatalogDAO) FindDonorByID(ctx context.Context, id uint) (Donor, error) {
	var donor Donor

	result := d.db.WithContext(ctx).First(&donor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Donor{}, ErrDonorNotFound
		}

		return Donor{}, result.Error
	}

	return donor, nil
}

func (d *CatalogDAO) ListDonors(ctx context.Context) ([]Donor, error) {
	var donors []Donor

	result := d.db.WithContext(ctx).Order("id").Find(&donors)
	if result.Error != nil {
		return nil, result.Error
	}

	return donors, nil
}

// FindDonors matches donors by name, by email and by the name of any gift they gave.
func (d *CatalogDAO) FindDonors(ctx context.Context, filter DonorFilter) ([]Donor, error) {
	var donors []Donor

	query := d.db.WithContext(ctx)

	if filter.DonorName != "" {
		query = query.Where("donors.name LIKE ?", "%"+filter.DonorName+"%")
	}
	if filter.Email != "" {
		query = query.Where("donors.email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.GiftName != "" {
		query = query.Where("EXISTS (SELECT 1 FROM gifts WHERE gifts.donor_id = donors.id AND gifts.name LIKE ?)",
			"%"+filter.GiftName+"%")
	}

	result := query.Order("donors.id").Find(&donors)
	if result.Error != nil {
		return nil, result.Error
	}

	return donors, nil
}

func (d *CatalogDAO) FindGiftsByDonors(ctx context.Context, donorIDs []uint) ([]Gift, error) {
	var gifts []Gift

	if len(donorIDs) == 0 {
		return gifts, nil
	}

	result := d.db.WithContext(ctx).
		Preload("Donor").
		Preload("Category").
		Preload("Winner").
		Where("donor_id IN ?", donorIDs).
		Order("id").
		Find(&gifts)
	if result.Error != nil {
		return nil, result.Error
	}

	return gifts, nil
}

func (d *CatalogDAO) InsertCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_categories_name", "categories.name") {
			return Category{}, ErrCategoryNameExists
		}

		return Category{}, result.Error
	}

	return category, nil
}

func (d *CatalogDAO) FindCategoryByID(ctx context.Context, id uint) (Category, error) {
	var category Category

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}

		return Category{}, result.Error
	}

	return category, nil
}

func (d *CatalogDAO) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category

	result := d.db.WithContext(ctx).Order("name").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *CatalogDAO) InsertGift(ctx context.Context, gift Gift) (Gift, error) {
	result := d.db.WithContext(ctx).Omit("Donor", "Category", "Winner").Create(&gift)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_gifts_name", "gifts.name") {
			return Gift{}, ErrGiftNameExists
		}

		return Gift{}, result.Error
	}

	return gift, nil
}

func (d *CatalogDAO) FindGiftByID(ctx context.Context, id uint) (Gift, error) {
	var gift Gift

	result := d.db.WithContext(ctx).
		Preload("Donor").
		Preload("Category").
		Preload("Winner").
		First(&gift, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Gift{}, ErrGiftNotFound
		}

		return Gift{}, result.Error
	}

	return gift, nil
}

func (d *CatalogDAO) ExistsGiftByName(ctx context.Context, name string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Gift{}).Where("name = ?", name).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *CatalogDAO) FindGifts(ctx context.Context, filter GiftFilter) ([]Gift, error) {
	var gifts []Gift

	query := d.db.WithContext(ctx).
		Preload("Donor").
		Preload("Category").
		Preload("Winner")

	if filter.GiftName != "" {
		query = query.Where("gifts.name LIKE ?", "%"+filter.GiftName+"%")
	}
	if filter.DonorName != "" {
		query = query.Joins("JOIN donors ON donors.id = gifts.donor_id").
			Where("donors.name LIKE ?", "%"+filter.DonorName+"%")
	}
	if filter.CategoryName != "" {
		query = query.Joins("JOIN categories ON categories.id = gifts.category_id").
			Where("categories.name LIKE ?", "%"+filter.CategoryName+"%")
	}
	if filter.MaxPrice != nil {
		query = query.Where("gifts.price <= ?", *filter.MaxPrice)
	}

	result := query.Order("gifts.id").Find(&gifts)
	if result.Error != nil {
		return nil, result.Error
	}

	return gifts, nil
}

func (d *CatalogDAO) FindDrawnGifts(ctx context.Context) ([]Gift, error) {
	var gifts []Gift

	result := d.db.WithContext(ctx).
		Preload("Winner").
		Where("winner_id IS NOT NULL").
		Order("id").
		Find(&gifts)
	if result.Error != nil {
		return nil, result.Error
	}

	return gifts, nil
}

// SetWinner is a compare-and-set on winner_id: it only succeeds while the gift has
// no winner, so of two concurrent draws exactly one observes a written row.
func (d *CatalogDAO) SetWinner(ctx context.Context, giftID, userID uint) error {
	result := d.db.WithContext(ctx).
		Model(&Gift{}).
		Where("id = ? AND winner_id IS NULL", giftID).
		Update("winner_id", userID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGiftAlreadyDrawn
	}

	return nil
}
