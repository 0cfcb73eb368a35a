package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// GatewayCallbackRequest is the confirmation posted by the payment gateway
// after a checkout completes.
type GatewayCallbackRequest struct {
	OrderRef   string `json:"order_ref"`
	PaymentRef string `json:"payment_ref"`
	Signature  string `json:"signature"`
}

func (req *GatewayCallbackRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OrderRef, validation.Required),
		validation.Field(&req.PaymentRef, validation.Required),
		validation.Field(&req.Signature, validation.Required),
	)
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	UPIID string `json:"upi_id"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Phone, validation.Length(0, 15)),
		validation.Field(&req.UPIID, validation.Length(0, 50)),
	)
}
