package service

import (
	"errors"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository"
)

// Storage facts re-exported for handlers.
var (
	ErrUserNotFound       = repository.ErrUserNotFound
	ErrUserEmailExists    = repository.ErrUserEmailExists
	ErrUserNameExists     = repository.ErrUserNameExists
	ErrGiftNotFound       = repository.ErrGiftNotFound
	ErrGiftNameExists     = repository.ErrGiftNameExists
	ErrGiftAlreadyDrawn   = repository.ErrGiftAlreadyDrawn
	ErrDonorNotFound      = repository.ErrDonorNotFound
	ErrDonorExists        = repository.ErrDonorExists
	ErrCategoryNotFound   = repository.ErrCategoryNotFound
	ErrCategoryNameExists = repository.ErrCategoryNameExists
	ErrCartLineNotFound   = repository.ErrCartLineNotFound
	ErrCartLineNotOpen    = repository.ErrCartLineNotOpen
	ErrCartEmpty          = repository.ErrCartEmpty

	ErrLineQuantityExceeded = repository.ErrLineQuantityExceeded
)

// Business rules.
var (
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and the allowed maximum")
	ErrCartLineForbidden  = errors.New("cart line belongs to another user")
	ErrNoTicketsPurchased = errors.New("no tickets were purchased for this gift")
	ErrInvalidGiftPrice   = errors.New("gift price is out of the allowed range")
	ErrInvalidCriteria    = errors.New("invalid criteria, only 'expensive' or 'purchased' are allowed")
	ErrPurchasesNotFound  = errors.New("no purchases were found for this user")
)
