package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

type CartService interface {
	GetOpenCart(ctx context.Context, userID uint) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, userID, giftID uint, quantity int) (domain.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID, userID uint, quantity int) (domain.CartLine, error)
	RemoveFromCart(ctx context.Context, lineID, userID uint) error
	ClearCart(ctx context.Context, userID uint) error
	Purchase(ctx context.Context, userID uint) error
	GetPurchasesByGift(ctx context.Context, giftID uint) (domain.GiftPurchasesSummary, error)
}

type CartHandler struct {
	svc  CartService
	uSvc UserService
}

func NewCartHandler(svc CartService, uSvc UserService) *CartHandler {
	return &CartHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetCart godoc
// @Summary      Get the caller's open cart
// @Tags         cart
// @Produce      json
// @Success      200  {array}   domain.CartItem
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Cart [get]
// @Security     BearerAuth
func (h *CartHandler) HandleGetCart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.GetOpenCart(ctx.Request.Context(), user.ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetCart -> h.svc.GetOpenCart", err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleAddToCart godoc
// @Summary      Add tickets for a gift to the cart
// @Tags         cart
// @Produce      json
// @Param        request  body      request.AddToCartRequest  true  "request body"
// @Success      200      {object}  domain.CartLine
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /Cart [post]
// @Security     BearerAuth
func (h *CartHandler) HandleAddToCart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	line, err := h.svc.AddToCart(ctx.Request.Context(), user.ID, req.GiftID, req.Quantity)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleAddToCart -> h.svc.AddToCart", err)
		return
	}

	ctx.JSON(http.StatusOK, line)
}

// HandleUpdateQuantity godoc
// @Summary      Set the quantity of an open cart line
// @Tags         cart
// @Produce      json
// @Param        id       path      int  true  "Cart line ID"
// @Param        request  body      int  true  "new quantity"
// @Success      200      {object}  domain.CartLine
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /Cart/{id} [put]
// @Security     BearerAuth
func (h *CartHandler) HandleUpdateQuantity(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	lineID, respErr := parseIDParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var quantity int
	if err := ctx.ShouldBindJSON(&quantity); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	line, err := h.svc.UpdateQuantity(ctx.Request.Context(), lineID, user.ID, quantity)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateQuantity -> h.svc.UpdateQuantity", err)
		return
	}

	ctx.JSON(http.StatusOK, line)
}

// HandleRemoveFromCart godoc
// @Summary      Remove an open cart line
// @Tags         cart
// @Produce      json
// @Param        id   path      int  true  "Cart line ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Cart/{id} [delete]
// @Security     BearerAuth
func (h *CartHandler) HandleRemoveFromCart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	lineID, respErr := parseIDParam(ctx, "id")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.RemoveFromCart(ctx.Request.Context(), lineID, user.ID); err != nil {
		renderServiceErr(ctx, "v1.HandleRemoveFromCart -> h.svc.RemoveFromCart", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "item removed from cart"})
}

// HandlePurchase godoc
// @Summary      Purchase every open line of the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Cart/purchase [post]
// @Security     BearerAuth
func (h *CartHandler) HandlePurchase(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Purchase(ctx.Request.Context(), user.ID); err != nil {
		renderServiceErr(ctx, "v1.HandlePurchase -> h.svc.Purchase", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "purchase completed"})
}

// HandleClearCart godoc
// @Summary      Delete every open line of the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /Cart/clear [delete]
// @Security     BearerAuth
func (h *CartHandler) HandleClearCart(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.ClearCart(ctx.Request.Context(), user.ID); err != nil {
		renderServiceErr(ctx, "v1.HandleClearCart -> h.svc.ClearCart", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "cart cleared"})
}

// HandleGetPurchasesByGift godoc
// @Summary      Purchasers of one gift
// @Tags         cart
// @Produce      json
// @Param        giftId  path      int  true  "Gift ID"
// @Success      200     {object}  domain.GiftPurchasesSummary
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /Cart/purchases/{giftId} [get]
// @Security     BearerAuth
func (h *CartHandler) HandleGetPurchasesByGift(ctx *gin.Context) {
	giftID, respErr := parseIDParam(ctx, "giftId")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	summary, err := h.svc.GetPurchasesByGift(ctx.Request.Context(), giftID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetPurchasesByGift -> h.svc.GetPurchasesByGift", err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
