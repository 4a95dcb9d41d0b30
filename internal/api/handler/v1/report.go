package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

type ReportService interface {
	RevenueSummary(ctx context.Context) (domain.RevenueSummary, error)
	Winners(ctx context.Context) ([]domain.WinnerRow, error)
	TopGift(ctx context.Context, criteria string) (*domain.GiftStats, error)
	PurchaserDetails(ctx context.Context, userID uint) (domain.PurchaserDetails, error)
	AllPurchasers(ctx context.Context) ([]domain.PurchaserDetails, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleRevenueSummary godoc
// @Summary      Revenue summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  domain.RevenueSummary
// @Failure      500  {object}  response.Err
// @Router       /Reports/revenue-summary [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleRevenueSummary(ctx *gin.Context) {
	summary, err := h.svc.RevenueSummary(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRevenueSummary -> h.svc.RevenueSummary", err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleWinners godoc
// @Summary      Winners of every drawn gift
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.WinnerRow
// @Failure      500  {object}  response.Err
// @Router       /Reports/winners [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleWinners(ctx *gin.Context) {
	rows, err := h.svc.Winners(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleWinners -> h.svc.Winners", err)
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// HandleTopGift godoc
// @Summary      Top gift by criteria
// @Description  Returns null when nothing was purchased yet.
// @Tags         reports
// @Produce      json
// @Param        criteria  query     string  true  "expensive or purchased"
// @Success      200       {object}  domain.GiftStats
// @Failure      400       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /Cart/admin/top-gift [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleTopGift(ctx *gin.Context) {
	stats, err := h.svc.TopGift(ctx.Request.Context(), ctx.Query("criteria"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleTopGift -> h.svc.TopGift", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetPurchaser godoc
// @Summary      Purchase history of one user
// @Tags         reports
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  domain.PurchaserDetails
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /Cart/admin/purchaser/{userId} [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleGetPurchaser(ctx *gin.Context) {
	userID, respErr := parseIDParam(ctx, "userId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	details, err := h.svc.PurchaserDetails(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPurchaser -> h.svc.PurchaserDetails", err)
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// HandleListPurchasers godoc
// @Summary      Purchase summaries of every purchaser
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.PurchaserDetails
// @Failure      500  {object}  response.Err
// @Router       /Cart/admin/purchasers [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleListPurchasers(ctx *gin.Context) {
	purchasers, err := h.svc.AllPurchasers(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListPurchasers -> h.svc.AllPurchasers", err)
		return
	}

	ctx.JSON(http.StatusOK, purchasers)
}
