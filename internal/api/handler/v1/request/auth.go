package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	// at least 8 characters, 1 letter and 1 number
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type StaffLoginRequest struct {
	StaffID  string `json:"staff_id"`
	Password string `json:"password"`
}

func (req *StaffLoginRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.StaffID, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type BoyLoginRequest struct {
	BoyID    string `json:"boy_id"`
	Password string `json:"password"`
}

func (req *BoyLoginRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.BoyID, validation.Required),
	)
}

type SetPasswordRequest struct {
	BoyID           string `json:"boy_id"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (req *SetPasswordRequest) Validate() error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.BoyID, validation.Required),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
	); err != nil {
		return err
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return validatePassword(req.Password)
}

type AddBoyRequest struct {
	BoyID string `json:"boy_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	UPIID string `json:"upi_id"`
}

func (req *AddBoyRequest) Validate() error {
	return validation.ValidateStruct(req,
		validation.Field(&req.BoyID, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Name, validation.Required),
	)
}

// validatePassword uses regexp2 because Go's stdlib regexp has no lookahead
// support.
func validatePassword(password string) error {
	exp, err := regexp2.Compile(passwordRegexPattern, regexp2.None)
	if err != nil {
		return err
	}

	ok, err := exp.MatchString(password)
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidPassword
	}

	return nil
}
