package dao

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

type fixture struct {
	alice User
	bob   User
	donor Donor
	toys  Category
	bike  Gift
	radio Gift
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()

	users := NewUserDAO(db)
	catalog := NewCatalogDAO(db)

	alice, err := users.Insert(ctx, User{Name: "alice", Email: "alice@example.com", Phone: "0501111111", Password: "x", Role: "user"})
	require.NoError(t, err)
	bob, err := users.Insert(ctx, User{Name: "bob", Email: "bob@example.com", Phone: "0502222222", Password: "x", Role: "user"})
	require.NoError(t, err)

	donor, err := catalog.InsertDonor(ctx, Donor{IdentityNumber: "123456789", Name: "Acme", Email: "acme@example.com", Phone: "0509999999"})
	require.NoError(t, err)
	toys, err := catalog.InsertCategory(ctx, Category{Name: "Toys"})
	require.NoError(t, err)

	bike, err := catalog.InsertGift(ctx, Gift{Name: "Bike", Description: "red bike", Picture: "bike.png", Price: 10, DonorID: donor.ID, CategoryID: &toys.ID})
	require.NoError(t, err)
	radio, err := catalog.InsertGift(ctx, Gift{Name: "Radio", Description: "fm radio", Picture: "radio.png", Price: 20, DonorID: donor.ID})
	require.NoError(t, err)

	return fixture{
		alice: alice,
		bob:   bob,
		donor: donor,
		toys:  toys,
		bike:  bike,
		radio: radio,
	}
}
