package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	TagNotBlank     = "notblank"
	TagContactEmail = "contact_email"
)

// Regex patterns
var (
	// local-part@domain.tld: one @, a dot somewhere after it, no whitespace anywhere
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// New returns a validator with the custom tags registered and JSON field names
// reported in errors.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation(TagNotBlank, validators.NotBlank)
	_ = v.RegisterValidation(TagContactEmail, ContactEmail)
}

// ContactEmail validates the simple address shape accepted by the contact form.
func ContactEmail(fl validator.FieldLevel) bool {
	return IsContactEmail(fl.Field().String())
}

func IsContactEmail(s string) bool {
	return contactEmailRegex.MatchString(s)
}
