package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "something went wrong, please try again later"

// Err is the error body of every failed request.
type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	fields := []zap.Field{
		zap.String("request_id", requestid.Get(ctx)),
		zap.Int("status", err.HTTPStatusCode),
		zap.String("path", ctx.FullPath()),
	}

	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed", append(fields, zap.Error(err.Err))...)
	} else {
		zap.L().Info("request rejected", append(fields, zap.String("message", err.Message))...)
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Message:        err.Error(),
	}
}

func ErrResourceNotFound(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		Message:        err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		Message:        err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		Message:        err.Error(),
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        "wrong email or password",
	}
}

// ErrInternalServerError never exposes the cause to the client.
func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        internalErrorMessage,
	}
}
