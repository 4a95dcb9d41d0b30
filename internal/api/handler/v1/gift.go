package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

type CatalogService interface {
	ListGifts(ctx context.Context) ([]domain.GiftView, error)
	GetGift(ctx context.Context, id uint) (domain.GiftView, error)
	SearchGifts(ctx context.Context, categoryName string, maxPrice *int) ([]domain.GiftView, error)
	ManagerSearchGifts(ctx context.Context, giftName, donorName string, minTickets *int) ([]domain.GiftView, error)
	CreateGift(ctx context.Context, gift domain.Gift) (domain.Gift, error)
	CreateDonor(ctx context.Context, donor domain.Donor) (domain.Donor, error)
	ListDonors(ctx context.Context) ([]domain.Donor, error)
	GetDonor(ctx context.Context, id uint) (domain.DonorView, error)
	SearchDonors(ctx context.Context, search domain.DonorSearch) ([]domain.DonorView, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type DrawService interface {
	DrawWinner(ctx context.Context, giftID uint) (domain.DrawResult, error)
}

type GiftHandler struct {
	svc     CatalogService
	drawSvc DrawService
}

func NewGiftHandler(svc CatalogService, drawSvc DrawService) *GiftHandler {
	return &GiftHandler{
		svc:     svc,
		drawSvc: drawSvc,
	}
}

// HandleListGifts godoc
// @Summary      List gifts
// @Tags         gifts
// @Produce      json
// @Success      200  {array}   domain.GiftView
// @Failure      500  {object}  response.Err
// @Router       /Gift [get]
func (h *GiftHandler) HandleListGifts(ctx *gin.Context) {
	gifts, err := h.svc.ListGifts(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListGifts -> h.svc.ListGifts", err)
		return
	}

	ctx.JSON(http.StatusOK, gifts)
}

// HandleGetGift godoc
// @Summary      Get a gift
// @Tags         gifts
// @Produce      json
// @Param        id   path      int  true  "Gift ID"
// @Success      200  {object}  domain.GiftView
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Gift/{id} [get]
func (h *GiftHandler) HandleGetGift(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gift, err := h.svc.GetGift(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetGift -> h.svc.GetGift", err)
		return
	}

	ctx.JSON(http.StatusOK, gift)
}

// HandleSearchGifts godoc
// @Summary      Search gifts by category and maximum price
// @Tags         gifts
// @Produce      json
// @Param        categoryName  query  string  false  "Category name contains"
// @Param        maxPrice      query  int     false  "Maximum price"
// @Success      200  {array}   domain.GiftView
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Gift/search [get]
func (h *GiftHandler) HandleSearchGifts(ctx *gin.Context) {
	maxPrice, respErr := parseOptionalIntQuery(ctx, "maxPrice")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gifts, err := h.svc.SearchGifts(ctx.Request.Context(), ctx.Query("categoryName"), maxPrice)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSearchGifts -> h.svc.SearchGifts", err)
		return
	}

	ctx.JSON(http.StatusOK, gifts)
}

// HandleManagerSearchGifts godoc
// @Summary      Search gifts by name, donor and minimum tickets sold
// @Tags         gifts
// @Produce      json
// @Param        giftName    query  string  false  "Gift name contains"
// @Param        donorName   query  string  false  "Donor name contains"
// @Param        minTickets  query  int     false  "Minimum purchased tickets"
// @Success      200  {array}   domain.GiftView
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Gift/manager/search [get]
// @Security     BearerAuth
func (h *GiftHandler) HandleManagerSearchGifts(ctx *gin.Context) {
	minTickets, respErr := parseOptionalIntQuery(ctx, "minTickets")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gifts, err := h.svc.ManagerSearchGifts(ctx.Request.Context(), ctx.Query("giftName"), ctx.Query("donorName"), minTickets)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleManagerSearchGifts -> h.svc.ManagerSearchGifts", err)
		return
	}

	ctx.JSON(http.StatusOK, gifts)
}

// HandleCreateGift godoc
// @Summary      Create a gift
// @Tags         gifts
// @Produce      json
// @Param        request  body      request.CreateGiftRequest  true  "request body"
// @Success      201      {object}  domain.Gift
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /Gift [post]
// @Security     BearerAuth
func (h *GiftHandler) HandleCreateGift(ctx *gin.Context) {
	var req request.CreateGiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	gift, err := h.svc.CreateGift(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateGift -> h.svc.CreateGift", err)
		return
	}

	ctx.JSON(http.StatusCreated, gift)
}

// HandleDrawWinner godoc
// @Summary      Draw the winner of a gift
// @Description  Picks one winner weighted by purchased tickets. A failed winner email is reported as emailSent=false.
// @Tags         gifts
// @Produce      json
// @Param        id   path      int  true  "Gift ID"
// @Success      200  {object}  response.DrawResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Gift/{id}/draw [post]
// @Security     BearerAuth
func (h *GiftHandler) HandleDrawWinner(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	result, err := h.drawSvc.DrawWinner(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDrawWinner -> h.drawSvc.DrawWinner", err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewDrawResponse(result))
}

// HandleCreateDonor godoc
// @Summary      Create a donor
// @Tags         donors
// @Produce      json
// @Param        request  body      request.CreateDonorRequest  true  "request body"
// @Success      201      {object}  domain.Donor
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /Donor [post]
// @Security     BearerAuth
func (h *GiftHandler) HandleCreateDonor(ctx *gin.Context) {
	var req request.CreateDonorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	donor, err := h.svc.CreateDonor(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateDonor -> h.svc.CreateDonor", err)
		return
	}

	ctx.JSON(http.StatusCreated, donor)
}

// HandleListDonors godoc
// @Summary      List donors
// @Tags         donors
// @Produce      json
// @Success      200  {array}   domain.Donor
// @Failure      500  {object}  response.Err
// @Router       /Donor [get]
// @Security     BearerAuth
func (h *GiftHandler) HandleListDonors(ctx *gin.Context) {
	donors, err := h.svc.ListDonors(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListDonors -> h.svc.ListDonors", err)
		return
	}

	ctx.JSON(http.StatusOK, donors)
}

// HandleGetDonor godoc
// @Summary      Get a donor with its gifts
// @Tags         donors
// @Produce      json
// @Param        id   path      int  true  "Donor ID"
// @Success      200  {object}  domain.DonorView
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Donor/{id} [get]
// @Security     BearerAuth
func (h *GiftHandler) HandleGetDonor(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	donor, err := h.svc.GetDonor(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetDonor -> h.svc.GetDonor", err)
		return
	}

	ctx.JSON(http.StatusOK, donor)
}

// HandleSearchDonors godoc
// @Summary      Search donors by name, email and gift name
// @Tags         donors
// @Produce      json
// @Param        donorName  query  string  false  "Donor name contains"
// @Param        giftName   query  string  false  "Name of a contributed gift contains"
// @Param        email      query  string  false  "Email contains"
// @Success      200  {array}   domain.DonorView
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Donor/search [get]
// @Security     BearerAuth
func (h *GiftHandler) HandleSearchDonors(ctx *gin.Context) {
	var req request.SearchDonorsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	donors, err := h.svc.SearchDonors(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSearchDonors -> h.svc.SearchDonors", err)
		return
	}

	ctx.JSON(http.StatusOK, donors)
}

// HandleCreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Produce      json
// @Param        request  body      request.CreateCategoryRequest  true  "request body"
// @Success      201      {object}  domain.Category
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /Category [post]
// @Security     BearerAuth
func (h *GiftHandler) HandleCreateCategory(ctx *gin.Context) {
	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.CreateCategory(ctx.Request.Context(), domain.Category{Name: req.Name})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateCategory -> h.svc.CreateCategory", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   domain.Category
// @Failure      500  {object}  response.Err
// @Router       /Category [get]
func (h *GiftHandler) HandleListCategories(ctx *gin.Context) {
	categories, err := h.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListCategories -> h.svc.ListCategories", err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}
