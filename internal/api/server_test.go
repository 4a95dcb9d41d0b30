package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/config"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/pkg/mailer"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository/dao"
)

const managerEmail = "boss@example.com"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:   "test",
			Port:          "8080",
			BaseURL:       "localhost:8080",
			JWTSigningKey: "test-signing-key-0123456789",
			JWTTTL:        time.Hour,
			ManagerEmails: []string{managerEmail},
		},
		Gin:      &config.GinConfig{Mode: gin.TestMode},
		Postgres: &config.PostgresConfig{},
		SMTP:     &config.SMTPConfig{},
		Raffle:   &config.RaffleConfig{MaxLineQuantity: 100},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return NewServer(ctx, conf, db, mailer.NewSMTPNotifier(conf.SMTP))
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func registerAndLogin(t *testing.T, s *Server, name, email string) (string, domain.User) {
	t.Helper()

	rec := doRequest(t, s, http.MethodPost, "/api/Auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"phone":    "0501234567",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodPost, "/api/Auth/login", "", map[string]string{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	login := decode[response.LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)

	return login.Token, login.User
}

func createGift(t *testing.T, s *Server, managerToken string) domain.Gift {
	t.Helper()

	rec := doRequest(t, s, http.MethodPost, "/api/Donor", managerToken, map[string]string{
		"identity_number": "123456789",
		"name":            "Acme",
		"email":           "acme@example.com",
		"phone":           "0509999999",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donor := decode[domain.Donor](t, rec)

	rec = doRequest(t, s, http.MethodPost, "/api/Category", managerToken, map[string]string{"name": "Toys"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[domain.Category](t, rec)

	rec = doRequest(t, s, http.MethodPost, "/api/Gift", managerToken, map[string]any{
		"name":        "Bike",
		"description": "red bike",
		"picture":     "bike.png",
		"price":       10,
		"donor_id":    donor.ID,
		"category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[domain.Gift](t, rec)
}

func TestServer_Authorization(t *testing.T) {
	s := newTestServer(t)
	userToken, user := registerAndLogin(t, s, "alice", "alice@example.com")
	assert.Equal(t, domain.RoleUser, user.Role)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/Cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotEmpty(t, decode[response.Err](t, rec).Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/Cart", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user role on a manager route", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/Reports/revenue-summary", userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("public routes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doRequest(t, s, http.MethodGet, "/api/Gift", "", nil).Code)
		assert.Equal(t, http.StatusOK, doRequest(t, s, http.MethodGet, "/api/Category", "", nil).Code)
		assert.Equal(t, http.StatusOK, doRequest(t, s, http.MethodGet, "/", "", nil).Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/Auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong1",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/Auth/register", "", map[string]string{
			"name":     "alice2",
			"email":    "ALICE@example.com",
			"phone":    "0501234567",
			"password": "secret1",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("email and name availability", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/Auth/check-email?email=ALICE@example.com", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[bool](t, rec))

		rec = doRequest(t, s, http.MethodGet, "/api/Auth/check-email?email=nobody@example.com", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, decode[bool](t, rec))

		rec = doRequest(t, s, http.MethodGet, "/api/Auth/check-name?name=alice", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[bool](t, rec))

		rec = doRequest(t, s, http.MethodGet, "/api/Auth/check-name?name=zed", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, decode[bool](t, rec))

		rec = doRequest(t, s, http.MethodGet, "/api/Auth/check-email", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = doRequest(t, s, http.MethodGet, "/api/Auth/check-name?name=", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("weak password", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/Auth/register", "", map[string]string{
			"name":     "dave",
			"email":    "dave@example.com",
			"phone":    "0501234567",
			"password": "abcdef",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_RaffleFlow(t *testing.T) {
	s := newTestServer(t)
	managerToken, manager := registerAndLogin(t, s, "boss", managerEmail)
	require.Equal(t, domain.RoleManager, manager.Role)
	aliceToken, alice := registerAndLogin(t, s, "alice", "alice@example.com")
	bobToken, _ := registerAndLogin(t, s, "bob", "bob@example.com")

	gift := createGift(t, s, managerToken)
	giftPath := fmt.Sprintf("/api/Gift/%d", gift.ID)

	rec := doRequest(t, s, http.MethodPost, "/api/Gift", aliceToken, map[string]any{"name": "Boat", "price": 10, "donor_id": 1})
	require.Equal(t, http.StatusForbidden, rec.Code)

	t.Run("donor detail and search", func(t *testing.T) {
		donorPath := fmt.Sprintf("/api/Donor/%d", gift.DonorID)

		rec := doRequest(t, s, http.MethodGet, donorPath, managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		donor := decode[domain.DonorView](t, rec)
		assert.Equal(t, "Acme", donor.Name)
		require.Len(t, donor.Gifts, 1)
		assert.Equal(t, "Bike", donor.Gifts[0].Name)
		assert.Equal(t, "Toys", donor.Gifts[0].CategoryName)

		rec = doRequest(t, s, http.MethodGet, donorPath, aliceToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/api/Donor/9999", managerToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/api/Donor/search?giftName=bik&email=ACME", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Len(t, decode[[]domain.DonorView](t, rec), 1)

		rec = doRequest(t, s, http.MethodGet, "/api/Donor/search?donorName=Globex", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]domain.DonorView](t, rec))
	})

	// Drawing before any purchase is a conflict.
	rec = doRequest(t, s, http.MethodPost, giftPath+"/draw", managerToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/Cart", aliceToken, map[string]any{"giftId": gift.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = doRequest(t, s, http.MethodPost, "/api/Cart", aliceToken, map[string]any{"giftId": gift.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	line := decode[domain.CartLine](t, rec)
	require.Equal(t, 5, line.Quantity)
	linePath := fmt.Sprintf("/api/Cart/%d", line.ID)

	rec = doRequest(t, s, http.MethodPost, "/api/Cart", aliceToken, map[string]any{"giftId": gift.ID, "quantity": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/Cart", aliceToken, map[string]any{"giftId": 9999, "quantity": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodPut, linePath, bobToken, 3)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, linePath, bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, s, http.MethodPut, linePath, aliceToken, 4)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 4, decode[domain.CartLine](t, rec).Quantity)

	rec = doRequest(t, s, http.MethodGet, "/api/Cart", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]domain.CartItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].TotalPrice)

	rec = doRequest(t, s, http.MethodPost, "/api/Cart/purchase", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodPost, "/api/Cart/purchase", aliceToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, linePath, aliceToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s, http.MethodPut, linePath, aliceToken, 6)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/Cart", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.CartItem](t, rec))

	// bob keeps a ticket in his open cart while the gift is drawn
	rec = doRequest(t, s, http.MethodPost, "/api/Cart", bobToken, map[string]any{"giftId": gift.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("reports before the draw", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/Reports/revenue-summary", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.RevenueSummary{TotalRevenue: 40, TotalTicketsSold: 4, TotalParticipants: 1},
			decode[domain.RevenueSummary](t, rec))

		rec = doRequest(t, s, http.MethodGet, "/api/Cart/admin/top-gift?criteria=purchased", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		top := decode[domain.GiftStats](t, rec)
		assert.Equal(t, gift.ID, top.GiftID)
		assert.Equal(t, 4, top.TotalTicketsPurchased)

		rec = doRequest(t, s, http.MethodGet, "/api/Cart/admin/top-gift?criteria=cheapest", managerToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/Cart/admin/purchaser/%d", alice.ID), managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 40, decode[domain.PurchaserDetails](t, rec).GrandTotalSpent)

		rec = doRequest(t, s, http.MethodGet, "/api/Cart/admin/purchaser/9999", managerToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/api/Cart/admin/purchasers", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]domain.PurchaserDetails](t, rec), 1)

		rec = doRequest(t, s, http.MethodGet, fmt.Sprintf("/api/Cart/purchases/%d", gift.ID), managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4, decode[domain.GiftPurchasesSummary](t, rec).TotalTicketsPurchased)

		rec = doRequest(t, s, http.MethodGet, "/api/Gift/manager/search?minTickets=4", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]domain.GiftView](t, rec), 1)
	})

	t.Run("draw", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, giftPath+"/draw", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		draw := decode[response.DrawResponse](t, rec)
		assert.Equal(t, alice.ID, draw.Winner.ID)
		assert.Equal(t, gift.ID, draw.GiftID)
		assert.Equal(t, 4, draw.TotalTickets)
		assert.False(t, draw.EmailSent)

		rec = doRequest(t, s, http.MethodPost, giftPath+"/draw", managerToken, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/api/Cart", bobToken, map[string]any{"giftId": gift.ID, "quantity": 1})
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/api/Cart/purchase", bobToken, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/api/Reports/revenue-summary", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 40, decode[domain.RevenueSummary](t, rec).TotalRevenue)

		rec = doRequest(t, s, http.MethodGet, "/api/Reports/winners", managerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		winners := decode[[]domain.WinnerRow](t, rec)
		require.Len(t, winners, 1)
		assert.Equal(t, "alice", winners[0].WinnerName)
		assert.Equal(t, "alice@example.com", winners[0].ContactEmail)

		rec = doRequest(t, s, http.MethodGet, giftPath, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		view := decode[domain.GiftView](t, rec)
		assert.Equal(t, "alice", view.WinnerName)
		assert.Equal(t, 4, view.TicketsSold)
	})
}
