package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

func newReportService() (*ReportService, *mockReportRepo, *mockPurchases, *mockGifts) {
	repo := &mockReportRepo{}
	purchases := &mockPurchases{}
	gifts := &mockGifts{}

	return NewReportService(repo, purchases, gifts), repo, purchases, gifts
}

func TestReportService_RevenueSummary(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newReportService()
	want := domain.RevenueSummary{TotalRevenue: 130, TotalTicketsSold: 10, TotalParticipants: 2}
	repo.On("RevenueSummary", ctx).Return(want, nil)

	got, err := svc.RevenueSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReportService_TopGift(t *testing.T) {
	ctx := context.Background()

	t.Run("criteria is case-insensitive", func(t *testing.T) {
		svc, repo, _, _ := newReportService()
		want := &domain.GiftStats{GiftID: 10, GiftName: "Radio", Price: 20, TotalTicketsPurchased: 3, TotalEarned: 60}
		repo.On("TopGift", ctx, domain.CriteriaExpensive).Return(want, nil)

		got, err := svc.TopGift(ctx, " Expensive ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("nothing purchased yet", func(t *testing.T) {
		svc, repo, _, _ := newReportService()
		repo.On("TopGift", ctx, domain.CriteriaPurchased).Return(nil, nil)

		got, err := svc.TopGift(ctx, "purchased")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid criteria", func(t *testing.T) {
		svc, repo, _, _ := newReportService()

		_, err := svc.TopGift(ctx, "cheapest")
		assert.ErrorIs(t, err, ErrInvalidCriteria)
		repo.AssertNotCalled(t, "TopGift", mock.Anything, mock.Anything)
	})
}

func TestReportService_Winners(t *testing.T) {
	ctx := context.Background()
	svc, _, _, gifts := newReportService()
	gifts.On("FindDrawnGifts", ctx).Return([]domain.GiftView{
		{
			Gift:        domain.Gift{ID: 10, Name: "Bike", WinnerID: &bob.ID},
			WinnerName:  bob.Name,
			WinnerEmail: bob.Email,
			WinnerPhone: bob.Phone,
		},
	}, nil)

	rows, err := svc.Winners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.WinnerRow{{
		GiftID:       10,
		GiftName:     "Bike",
		WinnerName:   "bob",
		ContactEmail: "bob@example.com",
		ContactPhone: "0502222222",
	}}, rows)
}

func TestReportService_PurchaserDetails(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("aggregates the history", func(t *testing.T) {
		svc, _, purchases, _ := newReportService()
		purchases.On("FindPurchasedByUser", ctx, bob.ID).Return([]domain.PurchasedLine{
			{GiftID: 10, GiftName: "Bike", Price: 10, Quantity: 2, Buyer: bob, CreatedAt: day},
			{GiftID: 11, GiftName: "Radio", Price: 20, Quantity: 1, Buyer: bob, CreatedAt: day},
		}, nil)

		details, err := svc.PurchaserDetails(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, details.UserID)
		assert.Equal(t, "bob@example.com", details.Email)
		assert.Equal(t, 3, details.TotalTicketsPurchased)
		assert.Equal(t, 40, details.GrandTotalSpent)
		require.Len(t, details.PurchaseHistory, 2)
		assert.Equal(t, domain.PurchaserItem{
			GiftID:       11,
			GiftName:     "Radio",
			Quantity:     1,
			PricePerUnit: 20,
			TotalPrice:   20,
			PurchaseDate: day,
		}, details.PurchaseHistory[1])
	})

	t.Run("no purchases", func(t *testing.T) {
		svc, _, purchases, _ := newReportService()
		purchases.On("FindPurchasedByUser", ctx, uint(42)).Return([]domain.PurchasedLine{}, nil)

		_, err := svc.PurchaserDetails(ctx, 42)
		assert.ErrorIs(t, err, ErrPurchasesNotFound)
	})
}

func TestReportService_AllPurchasers(t *testing.T) {
	ctx := context.Background()
	svc, _, purchases, _ := newReportService()
	purchases.On("FindAllPurchased", ctx).Return([]domain.PurchasedLine{
		{GiftID: 10, Price: 10, Quantity: 4, Buyer: carol},
		{GiftID: 10, Price: 10, Quantity: 1, Buyer: bob},
		{GiftID: 11, Price: 20, Quantity: 2, Buyer: carol},
	}, nil)

	all, err := svc.AllPurchasers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, bob.ID, all[0].UserID)
	assert.Equal(t, 10, all[0].GrandTotalSpent)
	assert.Equal(t, carol.ID, all[1].UserID)
	assert.Equal(t, 6, all[1].TotalTicketsPurchased)
	assert.Equal(t, 80, all[1].GrandTotalSpent)
}
