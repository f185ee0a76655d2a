package product

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request is the flat payload accepted when creating or updating a product.
// The optional type tag plus the variant-specific fields feed the category
// discriminator; fields for other variants are ignored.
type Request struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Type     string  `json:"type,omitempty"`
	Author   string  `json:"author,omitempty"`
	Genre    string  `json:"genre,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	Warranty string  `json:"warranty,omitempty"`
	Size     string  `json:"size,omitempty"`
	Material string  `json:"material,omitempty"`
}

// Validate checks the constraints enforced at the service boundary: name not
// blank, price strictly positive, quantity at least one.
func (r Request) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("must not be blank")),
		validation.Field(&r.Price,
			validation.Required.Error("must be greater than 0"),
			validation.Min(0.0).Exclusive().Error("must be greater than 0"),
		),
		validation.Field(&r.Quantity,
			validation.Required.Error("must be at least 1"),
			validation.Min(1).Error("must be at least 1"),
		),
	)
	if err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
