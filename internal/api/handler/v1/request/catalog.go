package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

var identityNumberExp = regexp.MustCompile(`^\d{9}$`)

type CreateDonorRequest struct {
	IdentityNumber string `json:"identity_number"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

func (req *CreateDonorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.IdentityNumber, validation.Required, validation.Match(identityNumberExp)),
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required, validation.Length(7, 15), is.Digit),
	)
}

func (req *CreateDonorRequest) ToDomain() domain.Donor {
	return domain.Donor{
		IdentityNumber: req.IdentityNumber,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 50)),
	)
}

type CreateGiftRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
	Price       int    `json:"price"`
	DonorID     uint   `json:"donor_id"`
	CategoryID  *uint  `json:"category_id"`
}

func (req *CreateGiftRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, domain.MaxGiftNameLength)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Picture, validation.Length(0, 255)),
		validation.Field(&req.Price, validation.Required, validation.Min(domain.MinGiftPrice), validation.Max(domain.MaxGiftPrice)),
		validation.Field(&req.DonorID, validation.Required),
		validation.Field(&req.CategoryID, validation.NilOrNotEmpty),
	)
}

func (req *CreateGiftRequest) ToDomain() domain.Gift {
	return domain.Gift{
		Name:        req.Name,
		Description: req.Description,
		Picture:     req.Picture,
		Price:       req.Price,
		DonorID:     req.DonorID,
		CategoryID:  req.CategoryID,
	}
}

type SearchDonorsRequest struct {
	DonorName string `form:"donorName"`
	GiftName  string `form:"giftName"`
	Email     string `form:"email"`
}

func (req *SearchDonorsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DonorName, validation.Length(0, 50)),
		validation.Field(&req.GiftName, validation.Length(0, domain.MaxGiftNameLength)),
		validation.Field(&req.Email, validation.Length(0, 254)),
	)
}

func (req *SearchDonorsRequest) ToDomain() domain.DonorSearch {
	return domain.DonorSearch{
		DonorName: req.DonorName,
		GiftName:  req.GiftName,
		Email:     req.Email,
	}
}
