package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/boxbox-club/boxbox-api/internal/domain"
)

type CreateDriverRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Nationality   string `json:"nationality"`
	Number        int    `json:"number"`
	ConstructorID *uint  `json:"constructor_id,omitempty"`
}

func (req *CreateDriverRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Code, validation.Required, validation.Length(2, 64)),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Number, validation.Min(0), validation.Max(99)),
	)
}

func (req *CreateDriverRequest) ToDriver() domain.Driver {
	driver := domain.Driver{
		Code:        req.Code,
		Name:        req.Name,
		Nationality: req.Nationality,
		Number:      req.Number,
	}
	if req.ConstructorID != nil {
		driver.Constructor = &domain.Constructor{ID: *req.ConstructorID}
	}

	return driver
}

type CreateConstructorRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

func (req *CreateConstructorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
	)
}
