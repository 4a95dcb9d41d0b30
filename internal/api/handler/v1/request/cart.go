package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AddToCartRequest struct {
	GiftID   uint `json:"giftId"`
	Quantity int  `json:"quantity"`
}

// Validate checks presence only; the quantity range is a ledger rule.
func (req *AddToCartRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GiftID, validation.Required),
	)
}
