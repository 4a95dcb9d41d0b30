package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportDAO(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	carts := NewCartDAO(db)
	d := NewReportDAO(db)

	t.Run("empty store", func(t *testing.T) {
		totals, err := d.RevenueTotals(ctx)
		require.NoError(t, err)
		assert.Equal(t, RevenueTotals{}, totals)

		top, err := d.TopGift(ctx, "expensive")
		require.NoError(t, err)
		assert.Nil(t, top)
	})

	// alice: 7 x Bike(10) = 70, bob: 3 x Radio(20) = 60
	_, err := carts.UpsertOpenLine(ctx, f.alice.ID, f.bike.ID, 7, 100)
	require.NoError(t, err)
	_, err = carts.UpsertOpenLine(ctx, f.bob.ID, f.radio.ID, 3, 100)
	require.NoError(t, err)
	_, err = carts.MarkPurchased(ctx, f.alice.ID)
	require.NoError(t, err)
	_, err = carts.MarkPurchased(ctx, f.bob.ID)
	require.NoError(t, err)
	_, err = carts.UpsertOpenLine(ctx, f.alice.ID, f.radio.ID, 50, 100)
	require.NoError(t, err)

	t.Run("revenue ignores open lines", func(t *testing.T) {
		totals, err := d.RevenueTotals(ctx)
		require.NoError(t, err)
		assert.Equal(t, RevenueTotals{TotalRevenue: 130, TotalTicketsSold: 10, TotalParticipants: 2}, totals)
	})

	t.Run("top gift by price", func(t *testing.T) {
		top, err := d.TopGift(ctx, "expensive")
		require.NoError(t, err)
		require.NotNil(t, top)
		assert.Equal(t, GiftStatsRow{GiftID: f.radio.ID, GiftName: "Radio", Price: 20, TotalTickets: 3, TotalEarned: 60}, *top)
	})

	t.Run("top gift by tickets", func(t *testing.T) {
		top, err := d.TopGift(ctx, "purchased")
		require.NoError(t, err)
		require.NotNil(t, top)
		assert.Equal(t, GiftStatsRow{GiftID: f.bike.ID, GiftName: "Bike", Price: 10, TotalTickets: 7, TotalEarned: 70}, *top)
	})

	t.Run("unknown criteria", func(t *testing.T) {
		_, err := d.TopGift(ctx, "cheapest")
		assert.ErrorIs(t, err, ErrUnknownCriteria)
	})
}
