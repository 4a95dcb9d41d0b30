package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

type mockGifts struct {
	mock.Mock
}

func (m *mockGifts) FindGiftByID(ctx context.Context, id uint) (domain.GiftView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.GiftView), args.Error(1)
}

func (m *mockGifts) SetWinner(ctx context.Context, giftID, userID uint) error {
	return m.Called(ctx, giftID, userID).Error(0)
}

func (m *mockGifts) FindDrawnGifts(ctx context.Context) ([]domain.GiftView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GiftView), args.Error(1)
}

type mockPurchases struct {
	mock.Mock
}

func (m *mockPurchases) FindPurchasedByGift(ctx context.Context, giftID uint) ([]domain.PurchasedLine, error) {
	args := m.Called(ctx, giftID)
	return args.Get(0).([]domain.PurchasedLine), args.Error(1)
}

func (m *mockPurchases) FindPurchasedByUser(ctx context.Context, userID uint) ([]domain.PurchasedLine, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.PurchasedLine), args.Error(1)
}

func (m *mockPurchases) FindAllPurchased(ctx context.Context) ([]domain.PurchasedLine, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PurchasedLine), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	return m.Called(ctx, to, subject, htmlBody).Error(0)
}

type mockAnnouncer struct {
	mock.Mock
}

func (m *mockAnnouncer) Announce(result domain.DrawResult) {
	m.Called(result)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) FindOpenItems(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *mockCartRepo) FindByID(ctx context.Context, id uint) (domain.CartLine, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.CartLine), args.Error(1)
}

func (m *mockCartRepo) AddToOpenLine(ctx context.Context, userID, giftID uint, quantity, max int) (domain.CartLine, error) {
	args := m.Called(ctx, userID, giftID, quantity, max)
	return args.Get(0).(domain.CartLine), args.Error(1)
}

func (m *mockCartRepo) UpdateQuantity(ctx context.Context, id uint, quantity int) (domain.CartLine, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(domain.CartLine), args.Error(1)
}

func (m *mockCartRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCartRepo) Clear(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCartRepo) Purchase(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCartRepo) FindPurchasedByGift(ctx context.Context, giftID uint) ([]domain.PurchasedLine, error) {
	args := m.Called(ctx, giftID)
	return args.Get(0).([]domain.PurchasedLine), args.Error(1)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) RevenueSummary(ctx context.Context) (domain.RevenueSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RevenueSummary), args.Error(1)
}

func (m *mockReportRepo) TopGift(ctx context.Context, criteria domain.TopGiftCriteria) (*domain.GiftStats, error) {
	args := m.Called(ctx, criteria)
	stats, _ := args.Get(0).(*domain.GiftStats)
	return stats, args.Error(1)
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) CreateDonor(ctx context.Context, donor domain.Donor) (domain.Donor, error) {
	args := m.Called(ctx, donor)
	return args.Get(0).(domain.Donor), args.Error(1)
}

func (m *mockCatalogRepo) FindDonorByID(ctx context.Context, id uint) (domain.Donor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Donor), args.Error(1)
}

func (m *mockCatalogRepo) ListDonors(ctx context.Context) ([]domain.Donor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *mockCatalogRepo) FindDonorView(ctx context.Context, id uint) (domain.DonorView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DonorView), args.Error(1)
}

func (m *mockCatalogRepo) FindDonors(ctx context.Context, search domain.DonorSearch) ([]domain.DonorView, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.DonorView), args.Error(1)
}

func (m *mockCatalogRepo) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCatalogRepo) FindCategoryByID(ctx context.Context, id uint) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockCatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCatalogRepo) CreateGift(ctx context.Context, gift domain.Gift) (domain.Gift, error) {
	args := m.Called(ctx, gift)
	return args.Get(0).(domain.Gift), args.Error(1)
}

func (m *mockCatalogRepo) GiftNameExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockCatalogRepo) FindGiftByID(ctx context.Context, id uint) (domain.GiftView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.GiftView), args.Error(1)
}

func (m *mockCatalogRepo) FindGifts(ctx context.Context, search domain.GiftSearch) ([]domain.GiftView, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.GiftView), args.Error(1)
}

type mockTickets struct {
	mock.Mock
}

func (m *mockTickets) TicketsByGift(ctx context.Context) (map[uint]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uint]int), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByName(ctx context.Context, name string) (domain.User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.User), args.Error(1)
}
