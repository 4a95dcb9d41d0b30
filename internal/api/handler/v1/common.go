package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

var (
	notFoundErrs = []error{
		service.ErrGiftNotFound,
		service.ErrCartLineNotFound,
		service.ErrUserNotFound,
		service.ErrDonorNotFound,
		service.ErrCategoryNotFound,
		service.ErrPurchasesNotFound,
	}
	conflictErrs = []error{
		service.ErrGiftAlreadyDrawn,
		service.ErrNoTicketsPurchased,
		service.ErrCartEmpty,
		service.ErrCartLineNotOpen,
		service.ErrUserEmailExists,
		service.ErrUserNameExists,
		service.ErrGiftNameExists,
		service.ErrDonorExists,
		service.ErrCategoryNameExists,
	}
	forbiddenErrs = []error{
		service.ErrCartLineForbidden,
	}
	invalidArgumentErrs = []error{
		service.ErrInvalidQuantity,
		service.ErrLineQuantityExceeded,
		service.ErrInvalidCriteria,
		service.ErrInvalidGiftPrice,
	}
)

func matchErr(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}

	return nil, false
}

// renderServiceErr maps a service error to its status. Only the sentinel message reaches the
// client; the full chain is kept for the log.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	if target, ok := matchErr(err, notFoundErrs); ok {
		resp := response.ErrResourceNotFound(target)
		resp.Err = err
		response.RenderErr(ctx, resp)
		return
	}
	if target, ok := matchErr(err, conflictErrs); ok {
		resp := response.ErrConflict(target)
		resp.Err = err
		response.RenderErr(ctx, resp)
		return
	}
	if target, ok := matchErr(err, forbiddenErrs); ok {
		resp := response.ErrPermissionDenied(target)
		resp.Err = err
		response.RenderErr(ctx, resp)
		return
	}
	if target, ok := matchErr(err, invalidArgumentErrs); ok {
		resp := response.ErrBadRequest(target)
		resp.Err = err
		response.RenderErr(ctx, resp)
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

// getUserFromContext loads the account behind the verified token.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	userID := ctx.GetUint(middleware.UserIDKey)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized(errors.New("missing user identity"))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(errors.New("user no longer exists"))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("uSvc.GetUser -> %w", err))
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s", name))
	}

	return uint(id), nil
}

func parseOptionalIntQuery(ctx *gin.Context, name string) (*int, *response.Err) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, response.ErrBadRequest(fmt.Errorf("invalid %s", name))
	}

	return &v, nil
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         healthcheck
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "OK"})
}
