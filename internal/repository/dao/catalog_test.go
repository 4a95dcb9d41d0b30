package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogDAO_UniqueViolations(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	d := NewCatalogDAO(db)

	_, err := d.InsertGift(ctx, Gift{Name: "Bike", Description: "again", Picture: "p", Price: 15, DonorID: f.donor.ID})
	assert.ErrorIs(t, err, ErrGiftNameExists)

	_, err = d.InsertCategory(ctx, Category{Name: "Toys"})
	assert.ErrorIs(t, err, ErrCategoryNameExists)

	_, err = d.InsertDonor(ctx, Donor{IdentityNumber: "123456789", Name: "Other", Email: "other@example.com", Phone: "0501234567"})
	assert.ErrorIs(t, err, ErrDonorExists)

	_, err = d.InsertDonor(ctx, Donor{IdentityNumber: "987654321", Name: "Other", Email: "acme@example.com", Phone: "0501234567"})
	assert.ErrorIs(t, err, ErrDonorExists)
}

func TestCatalogDAO_FindGiftByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	d := NewCatalogDAO(db)

	gift, err := d.FindGiftByID(ctx, f.bike.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", gift.Donor.Name)
	require.NotNil(t, gift.Category)
	assert.Equal(t, "Toys", gift.Category.Name)
	assert.Nil(t, gift.Winner)

	_, err = d.FindGiftByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrGiftNotFound)

	_, err = d.FindDonorByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrDonorNotFound)

	_, err = d.FindCategoryByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogDAO_FindGifts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	d := NewCatalogDAO(db)

	cheap := 15

	tests := []struct {
		name   string
		filter GiftFilter
		want   []uint
	}{
		{name: "no filter", filter: GiftFilter{}, want: []uint{f.bike.ID, f.radio.ID}},
		{name: "gift name", filter: GiftFilter{GiftName: "Rad"}, want: []uint{f.radio.ID}},
		{name: "donor name", filter: GiftFilter{DonorName: "Ac"}, want: []uint{f.bike.ID, f.radio.ID}},
		{name: "category name", filter: GiftFilter{CategoryName: "Toy"}, want: []uint{f.bike.ID}},
		{name: "max price", filter: GiftFilter{MaxPrice: &cheap}, want: []uint{f.bike.ID}},
		{name: "no match", filter: GiftFilter{DonorName: "Nobody"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gifts, err := d.FindGifts(ctx, tt.filter)
			require.NoError(t, err)

			var ids []uint
			for _, g := range gifts {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCatalogDAO_SetWinner(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	d := NewCatalogDAO(db)

	require.NoError(t, d.SetWinner(ctx, f.bike.ID, f.alice.ID))

	err := d.SetWinner(ctx, f.bike.ID, f.bob.ID)
	assert.ErrorIs(t, err, ErrGiftAlreadyDrawn)

	gift, err := d.FindGiftByID(ctx, f.bike.ID)
	require.NoError(t, err)
	require.NotNil(t, gift.WinnerID)
	assert.Equal(t, f.alice.ID, *gift.WinnerID)
	require.NotNil(t, gift.Winner)
	assert.Equal(t, "alice", gift.Winner.Name)

	drawn, err := d.FindDrawnGifts(ctx)
	require.NoError(t, err)
	require.Len(t, drawn, 1)
	assert.Equal(t, f.bike.ID, drawn[0].ID)
	assert.Equal(t, "alice@example.com", drawn[0].Winner.Email)
}

func TestCatalogDAO_ExistsGiftByName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	seed(t, db)
	d := NewCatalogDAO(db)

	exists, err := d.ExistsGiftByName(ctx, "Bike")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = d.ExistsGiftByName(ctx, "Boat")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCatalogDAO_FindDonors(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	f := seed(t, db)
	d := NewCatalogDAO(db)

	other, err := d.InsertDonor(ctx, Donor{IdentityNumber: "987654321", Name: "Globex", Email: "hello@globex.com", Phone: "0508888888"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter DonorFilter
		want   []uint
	}{
		{"no filter", DonorFilter{}, []uint{f.donor.ID, other.ID}},
		{"by name", DonorFilter{DonorName: "lob"}, []uint{other.ID}},
		{"by email", DonorFilter{Email: "acme@"}, []uint{f.donor.ID}},
		{"by gift name", DonorFilter{GiftName: "adi"}, []uint{f.donor.ID}},
		{"gift of another donor", DonorFilter{DonorName: "Globex", GiftName: "Bike"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			donors, err := d.FindDonors(ctx, tt.filter)
			require.NoError(t, err)

			var ids []uint
			for _, donor := range donors {
				ids = append(ids, donor.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("gifts by donor", func(t *testing.T) {
		gifts, err := d.FindGiftsByDonors(ctx, []uint{f.donor.ID, other.ID})
		require.NoError(t, err)
		require.Len(t, gifts, 2)
		assert.Equal(t, "Bike", gifts[0].Name)
		assert.Equal(t, "Toys", gifts[0].Category.Name)
		assert.Equal(t, "Acme", gifts[1].Donor.Name)

		none, err := d.FindGiftsByDonors(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
