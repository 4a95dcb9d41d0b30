package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/pkg/jwthelper"
)

// Context keys set by VerifyJWT.
const (
	UserIDKey = "userID"
	ClaimsKey = "claims"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid or expired token")
	errWrongRole    = errors.New("you are not allowed to access this resource")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			resp := response.ErrUnauthorized(errInvalidToken)
			resp.Err = fmt.Errorf("jwthelper.ParseToken -> %w", err)
			response.RenderErr(ctx, resp)
			return
		}

		ctx.Set(UserIDKey, claims.UserID)
		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// RequireRole must run after VerifyJWT.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, ok := ctx.Get(ClaimsKey)
		claims, isClaims := value.(*jwthelper.CustomClaims)
		if !ok || !isClaims {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(errWrongRole))
	}
}
