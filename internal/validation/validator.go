// Package validation checks generation requests before they reach the
// policy generator and reports every violation in one message.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/policy"
	"git.home.luguber.info/inful/policygen/internal/render"
)

// Validator checks PolicyRequest values. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "website_type", token(policy.WebsiteType.Valid))
	mustRegister(v, "data_category", token(policy.DataCategory.Valid))
	mustRegister(v, "retention_period", token(policy.RetentionPeriod.Valid))
	mustRegister(v, "cookie_type", token(policy.CookieType.Valid))
	mustRegister(v, "third_party_category", token(policy.ThirdPartyCategory.Valid))
	mustRegister(v, "policy_date", func(fl validator.FieldLevel) bool {
		_, err := policy.ParseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "output_format", func(fl validator.FieldLevel) bool {
		_, err := render.ParseFormat(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func token[T ~string](valid func(T) bool) validator.Func {
	return func(fl validator.FieldLevel) bool { return valid(T(fl.Field().String())) }
}

// Validate returns nil or a validation ClassifiedError whose message lists
// every violation, e.g.
//
//	Validation error: Required at "companyName"; Invalid email at "companyEmail"
func (v *Validator) Validate(req *PolicyRequest) error {
	if req == nil {
		return errors.ValidationError("Validation error: request body is required").Build()
	}
	err := v.v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.WrapError(err, errors.CategoryInternal, "validator failed").Build()
	}

	issues := make([]string, 0, len(fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fieldPath(fe)
		issues = append(issues, fmt.Sprintf("%s at %q", describe(fe), path))
		fields = append(fields, path)
	}
	return errors.ValidationError("Validation error: "+strings.Join(issues, "; ")).
		WithContext("fields", fields).
		Build()
}

// fieldPath strips the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("Array must contain at least %s element(s)", fe.Param())
	case "max":
		return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
	case "website_type":
		return enumMessage(policy.Strings(policy.WebsiteTypes), fe.Value())
	case "data_category":
		return enumMessage(policy.Strings(policy.DataCategories), fe.Value())
	case "retention_period":
		return enumMessage(policy.Strings(policy.RetentionPeriods), fe.Value())
	case "cookie_type":
		return enumMessage(policy.Strings(policy.CookieTypes), fe.Value())
	case "third_party_category":
		return enumMessage(policy.Strings(policy.ThirdPartyCategories), fe.Value())
	case "output_format":
		return enumMessage(policy.Strings(render.Formats), fe.Value())
	case "policy_date":
		return "Invalid date, expected YYYY-MM-DD"
	default:
		return "Invalid value"
	}
}

func enumMessage(valid []string, received any) string {
	quoted := make([]string, len(valid))
	for i, v := range valid {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", strings.Join(quoted, " | "), received)
}
