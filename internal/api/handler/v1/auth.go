package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/config"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/pkg/jwthelper"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NameExists(ctx context.Context, name string) (bool, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new user
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /Auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegister -> h.svc.Register", err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /Auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user, h.conf.JWTTTL)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken() -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandleCheckEmail godoc
// @Summary      Check whether an email is already registered
// @Tags         auth
// @Produce      json
// @Param        email  query     string  true  "Email"
// @Success      200    {boolean} bool
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /Auth/check-email [get]
func (h *AuthHandler) HandleCheckEmail(ctx *gin.Context) {
	var req request.CheckEmailRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	exists, err := h.svc.EmailExists(ctx.Request.Context(), req.Email)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCheckEmail -> h.svc.EmailExists", err)
		return
	}

	ctx.JSON(http.StatusOK, exists)
}

// HandleCheckName godoc
// @Summary      Check whether a user name is taken
// @Tags         auth
// @Produce      json
// @Param        name  query     string  true  "User name"
// @Success      200   {boolean} bool
// @Failure      400   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /Auth/check-name [get]
func (h *AuthHandler) HandleCheckName(ctx *gin.Context) {
	var req request.CheckNameRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	exists, err := h.svc.NameExists(ctx.Request.Context(), req.Name)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCheckName -> h.svc.NameExists", err)
		return
	}

	ctx.JSON(http.StatusOK, exists)
}
