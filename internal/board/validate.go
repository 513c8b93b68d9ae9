package board

import (
	"errors"
	"regexp"
	"strings"

	"skillswap/internal/apperr"
	"skillswap/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	MsgMissingFields = "Please fill in all fields."
	MsgInvalidEmail  = "Please enter a valid email address."
)

// Whitespace here also covers Unicode spaces and the byte order mark.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// Input is the form a posting is created from.
type Input struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Offer    string `form:"offer" json:"offer" validate:"required"`
	Want     string `form:"want" json:"want" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,contact_email"`
	Category string `form:"category" json:"category"`
}

// Validate trims the input in place and checks it. Text is otherwise kept
// verbatim; templates escape it on output. Missing fields are reported
// before a malformed email.
func (in *Input) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Offer = strings.TrimSpace(in.Offer)
	in.Want = strings.TrimSpace(in.Want)
	in.Email = strings.TrimSpace(in.Email)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = models.CategoryOther
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Internal("validating skill", err)
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperr.Validation(MsgMissingFields)
		}
	}
	return apperr.Validation(MsgInvalidEmail)
}

func (in Input) posting() models.Posting {
	return models.Posting{
		Name:     in.Name,
		Offer:    in.Offer,
		Want:     in.Want,
		Email:    in.Email,
		Category: in.Category,
	}
}
