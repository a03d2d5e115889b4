package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Billing is the address block of the checkout form. Form names follow
// the storefront markup (billing_first_name, ...).
type Billing struct {
	FirstName string `form:"billing_first_name" label:"Имя" validate:"required"`
	LastName  string `form:"billing_last_name" label:"Фамилия" validate:"required"`
	Address   string `form:"billing_address_1" label:"Адрес" validate:"required"`
	City      string `form:"billing_city" label:"Город / Населенный пункт" validate:"required"`
	State     string `form:"billing_state" label:"Область"`
	Postcode  string `form:"billing_postcode" label:"Почтовый индекс"`
	Phone     string `form:"billing_phone" label:"Телефон" validate:"required,phone"`
	Email     string `form:"billing_email" label:"Адрес почты" validate:"required,email"`
}

// FieldError is one rejected billing field
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HTML returns the notice text as the storefront renders it
func (e FieldError) HTML() string {
	return fmt.Sprintf("<strong>%s для выставления счета</strong> %s", e.Label, e.Message)
}

// ValidationErrors is returned by Billing.Validate
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid billing: " + strings.Join(parts, "; ")
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{4,19}$`)

var (
	billingValidator = newBillingValidator()
	billingLabels    = labelsOf(reflect.TypeOf(Billing{}))
)

func labelsOf(t reflect.Type) map[string]string {
	labels := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		labels[f.Tag.Get("form")] = f.Tag.Get("label")
	}
	return labels
}

// BillingFields lists the form names of the billing block in form order
func BillingFields() []string {
	t := reflect.TypeOf(Billing{})
	out := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		out = append(out, t.Field(i).Tag.Get("form"))
	}
	return out
}

// Label returns the display label of a billing form field
func Label(field string) string {
	return billingLabels[field]
}

func newBillingValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Trim strips surrounding whitespace from every field
func (b *Billing) Trim() {
	for _, f := range []*string{&b.FirstName, &b.LastName, &b.Address, &b.City, &b.State, &b.Postcode, &b.Phone, &b.Email} {
		*f = strings.TrimSpace(*f)
	}
}

// Validate checks required fields and formats. Errors come back in form
// order as ValidationErrors.
func (b Billing) Validate() error {
	err := billingValidator.Struct(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Label:   billingLabels[fe.Field()],
			Message: messageFor(fe.Tag()),
		})
	}
	return out
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return "обязательное поле."
	case "email":
		return "не является корректным адресом почты."
	case "phone":
		return "не является корректным номером телефона."
	default:
		return "заполнено неверно."
	}
}

// BillingFromForm reads the billing block from submitted form values
func BillingFromForm(get func(string) string) Billing {
	b := Billing{
		FirstName: get("billing_first_name"),
		LastName:  get("billing_last_name"),
		Address:   get("billing_address_1"),
		City:      get("billing_city"),
		State:     get("billing_state"),
		Postcode:  get("billing_postcode"),
		Phone:     get("billing_phone"),
		Email:     get("billing_email"),
	}
	b.Trim()
	return b
}

// Values maps form names to the field values
func (b Billing) Values() map[string]string {
	return map[string]string{
		"billing_first_name": b.FirstName,
		"billing_last_name":  b.LastName,
		"billing_address_1":  b.Address,
		"billing_city":       b.City,
		"billing_state":      b.State,
		"billing_postcode":   b.Postcode,
		"billing_phone":      b.Phone,
		"billing_email":      b.Email,
	}
}

// IsZero reports whether no field is filled
func (b Billing) IsZero() bool {
	return b == Billing{}
}
