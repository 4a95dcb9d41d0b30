package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository/dao"
)

var (
	ErrGiftNotFound       = dao.ErrGiftNotFound
	ErrGiftNameExists     = dao.ErrGiftNameExists
	ErrGiftAlreadyDrawn   = dao.ErrGiftAlreadyDrawn
	ErrDonorNotFound      = dao.ErrDonorNotFound
	ErrDonorExists        = dao.ErrDonorExists
	ErrCategoryNotFound   = dao.ErrCategoryNotFound
	ErrCategoryNameExists = dao.ErrCategoryNameExists
)

type CatalogDAO interface {
	InsertDonor(ctx context.Context, donor dao.Donor) (dao.Donor, error)
	FindDonorByID(ctx context.Context, id uint) (dao.Donor, error)
	ListDonors(ctx context.Context) ([]dao.Donor, error)
	FindDonors(ctx context.Context, filter dao.DonorFilter) ([]dao.Donor, error)
	FindGiftsByDonors(ctx context.Context, donorIDs []uint) ([]dao.Gift, error)
	InsertCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.Category, error)
	ListCategories(ctx context.Context) ([]dao.Category, error)
	InsertGift(ctx context.Context, gift dao.Gift) (dao.Gift, error)
	FindGiftByID(ctx context.Context, id uint) (dao.Gift, error)
	ExistsGiftByName(ctx context.Context, name string) (bool, error)
	FindGifts(ctx context.Context, filter dao.GiftFilter) ([]dao.Gift, error)
	FindDrawnGifts(ctx context.Context) ([]dao.Gift, error)
	SetWinner(ctx context.Context, giftID, userID uint) error
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

func (r *CatalogRepository) CreateDonor(ctx context.Context, donor domain.Donor) (domain.Donor, error) {
	created, err := r.dao.InsertDonor(ctx, dao.Donor{
		IdentityNumber: donor.IdentityNumber,
		Name:           donor.Name,
		Email:          domain.NormalizeEmail(donor.Email),
		Phone:          donor.Phone,
	})
	if err != nil {
		return domain.Donor{}, fmt.Errorf("r.dao.InsertDonor -> %w", err)
	}

	return donorToDomain(created), nil
}

func (r *CatalogRepository) FindDonorByID(ctx context.Context, id uint) (domain.Donor, error) {
	found, err := r.dao.FindDonorByID(ctx, id)
	if err != nil {
		return domain.Donor{}, fmt.Errorf("r.dao.FindDonorByID -> %w", err)
	}

	return donorToDomain(found), nil
}

func (r *CatalogRepository) ListDonors(ctx context.Context) ([]domain.Donor, error) {
	found, err := r.dao.ListDonors(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListDonors -> %w", err)
	}

	donors := make([]domain.Donor, 0, len(found))
	for _, d := range found {
		donors = append(donors, donorToDomain(d))
	}

	return donors, nil
}

func (r *CatalogRepository) FindDonorView(ctx context.Context, id uint) (domain.DonorView, error) {
	found, err := r.dao.FindDonorByID(ctx, id)
	if err != nil {
		return domain.DonorView{}, fmt.Errorf("r.dao.FindDonorByID -> %w", err)
	}

	views, err := r.withGifts(ctx, []dao.Donor{found})
	if err != nil {
		return domain.DonorView{}, err
	}

	return views[0], nil
}

func (r *CatalogRepository) FindDonors(ctx context.Context, search domain.DonorSearch) ([]domain.DonorView, error) {
	found, err := r.dao.FindDonors(ctx, dao.DonorFilter{
		DonorName: search.DonorName,
		GiftName:  search.GiftName,
		Email:     domain.NormalizeEmail(search.Email),
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDonors -> %w", err)
	}

	return r.withGifts(ctx, found)
}

func (r *CatalogRepository) withGifts(ctx context.Context, donors []dao.Donor) ([]domain.DonorView, error) {
	ids := make([]uint, 0, len(donors))
	for _, d := range donors {
		ids = append(ids, d.ID)
	}

	gifts, err := r.dao.FindGiftsByDonors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGiftsByDonors -> %w", err)
	}

	byDonor := make(map[uint][]domain.GiftView, len(donors))
	for _, g := range gifts {
		byDonor[g.DonorID] = append(byDonor[g.DonorID], giftToView(g))
	}

	views := make([]domain.DonorView, 0, len(donors))
	for _, d := range donors {
		view := domain.DonorView{
			Donor: donorToDomain(d),
			Gifts: byDonor[d.ID],
		}
		if view.Gifts == nil {
			view.Gifts = []domain.GiftView{}
		}
		views = append(views, view)
	}

	return views, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.InsertCategory(ctx, dao.Category{Name: category.Name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return categoryToDomain(created), nil
}

func (r *CatalogRepository) FindCategoryByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return categoryToDomain(found), nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	found, err := r.dao.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListCategories -> %w", err)
	}

	categories := make([]domain.Category, 0, len(found))
	for _, c := range found {
		categories = append(categories, categoryToDomain(c))
	}

	return categories, nil
}

func (r *CatalogRepository) CreateGift(ctx context.Context, gift domain.Gift) (domain.Gift, error) {
	created, err := r.dao.InsertGift(ctx, dao.Gift{
		Name:        gift.Name,
		Description: gift.Description,
		Picture:     gift.Picture,
		Price:       gift.Price,
		DonorID:     gift.DonorID,
		CategoryID:  gift.CategoryID,
	})
	if err != nil {
		return domain.Gift{}, fmt.Errorf("r.dao.InsertGift -> %w", err)
	}

	return giftToDomain(created), nil
}

func (r *CatalogRepository) GiftNameExists(ctx context.Context, name string) (bool, error) {
	exists, err := r.dao.ExistsGiftByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("r.dao.ExistsGiftByName -> %w", err)
	}

	return exists, nil
}

func (r *CatalogRepository) FindGiftByID(ctx context.Context, id uint) (domain.GiftView, error) {
	found, err := r.dao.FindGiftByID(ctx, id)
	if err != nil {
		return domain.GiftView{}, fmt.Errorf("r.dao.FindGiftByID -> %w", err)
	}

	return giftToView(found), nil
}

func (r *CatalogRepository) FindGifts(ctx context.Context, search domain.GiftSearch) ([]domain.GiftView, error) {
	found, err := r.dao.FindGifts(ctx, dao.GiftFilter{
		GiftName:     search.GiftName,
		DonorName:    search.DonorName,
		CategoryName: search.CategoryName,
		MaxPrice:     search.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGifts -> %w", err)
	}

	return giftsToViews(found), nil
}

func (r *CatalogRepository) FindDrawnGifts(ctx context.Context) ([]domain.GiftView, error) {
	found, err := r.dao.FindDrawnGifts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDrawnGifts -> %w", err)
	}

	return giftsToViews(found), nil
}

func (r *CatalogRepository) SetWinner(ctx context.Context, giftID, userID uint) error {
	if err := r.dao.SetWinner(ctx, giftID, userID); err != nil {
		return fmt.Errorf("r.dao.SetWinner -> %w", err)
	}

	return nil
}

func donorToDomain(d dao.Donor) domain.Donor {
	return domain.Donor{
		ID:             d.ID,
		IdentityNumber: d.IdentityNumber,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
	}
}

func categoryToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:   c.ID,
		Name: c.Name,
	}
}

func giftToDomain(g dao.Gift) domain.Gift {
	return domain.Gift{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Picture:     g.Picture,
		Price:       g.Price,
		DonorID:     g.DonorID,
		CategoryID:  g.CategoryID,
		WinnerID:    g.WinnerID,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func giftToView(g dao.Gift) domain.GiftView {
	view := domain.GiftView{
		Gift:      giftToDomain(g),
		DonorName: g.Donor.Name,
	}
	if g.Category != nil {
		view.CategoryName = g.Category.Name
	}
	if g.Winner != nil {
		view.WinnerName = g.Winner.Name
		view.WinnerEmail = g.Winner.Email
		view.WinnerPhone = g.Winner.Phone
	}

	return view
}

func giftsToViews(gifts []dao.Gift) []domain.GiftView {
	views := make([]domain.GiftView, 0, len(gifts))
	for _, g := range gifts {
		views = append(views, giftToView(g))
	}

	return views
}
