// Package validation checks groups against the dealer registration rules.
// Shape rules come from struct tags on types.Group; business rules that
// depend on the price tables are checked by hand afterwards.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

var (
	// custom validation tags & texts
	taxNumberTag   = "taxnumber"
	taxNumberText  = "Please use only numbers and hyphens for your IBT number."
	taxNumberRegex = regexp.MustCompile(`^[0-9-]*$`)

	reviewNotesTag  = "max"
	reviewNotesText = "{0} cannot be longer than {1} characters."
)

// Messages for the business rules
const (
	MsgSelectPower   = "Please select what power level you want, or no power."
	MsgInvalidPower  = "Please select a valid power level."
	MsgPowerUsage    = "Please provide a list of what powered devices you expect to use."
	MsgSetPowerFee   = "Please set a power fee. To provide free power, turn off automatic recalculation."
	MsgTooManyTables = "Please select a valid table size."
)

// FieldError is one failed rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validator validates groups against one engine's price tables
type Validator struct {
	engine     *cost.Engine
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a validator. A nil engine uses the default price tables.
func New(engine *cost.Engine) *Validator {
	if engine == nil {
		engine = cost.NewEngine(nil)
	}

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	v := &Validator{
		engine:     engine,
		validate:   validator.New(),
		translator: translator,
	}
	v.init()
	return v
}

func (v *Validator) init() {
	_ = en_translations.RegisterDefaultTranslations(v.validate, v.translator)

	// Use JSON tag names for errors instead of Go struct names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.validate.RegisterValidation(taxNumberTag, taxNumberValidation)
	v.registerTranslation(taxNumberTag, taxNumberText, false)
	v.registerTranslation(reviewNotesTag, reviewNotesText, true)
}

// registerTranslation registers a message for a validation tag. The message
// may reference the field name as {0} and the tag parameter as {1}.
func (v *Validator) registerTranslation(tag, text string, override bool) {
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// Validate returns every rule g breaks, shape rules first
func (v *Validator) Validate(g types.Group) []FieldError {
	var out []FieldError

	if err := v.validate.Struct(g); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []FieldError{{Field: "group", Message: err.Error()}}
		}
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: fe.Translate(v.translator)})
		}
	}

	return append(out, v.businessRules(g)...)
}

func (v *Validator) businessRules(g types.Group) []FieldError {
	var out []FieldError
	prices := v.engine.Prices()

	if maxTables := prices.MaxTables(); g.Tables > maxTables {
		out = append(out, FieldError{Field: "tables", Message: MsgTooManyTables})
	}

	if g.IsDealer {
		switch {
		case g.Power < 0:
			out = append(out, FieldError{Field: "power", Message: MsgSelectPower})
		case g.Power > prices.MaxPowerTier() || !prices.HasPowerTier(g.Power):
			out = append(out, FieldError{Field: "power", Message: MsgInvalidPower})
		case g.Power > 0 && strings.TrimSpace(g.PowerUsage) == "":
			out = append(out, FieldError{Field: "power_usage", Message: MsgPowerUsage})
		}

		if maxBadges := v.engine.DealerMaxBadges(g); g.Badges > maxBadges {
			out = append(out, FieldError{
				Field:   "badges",
				Message: fmt.Sprintf("You cannot have more than %d badges with %d tables.", maxBadges, g.Tables),
			})
		}
	}

	if needsPowerFee(v.engine, g) {
		out = append(out, FieldError{Field: "power_fee", Message: MsgSetPowerFee})
	}

	return out
}

// needsPowerFee reports an approved group whose power tier has no default
// price while fees are recalculated and no fee has been set
func needsPowerFee(e *cost.Engine, g types.Group) bool {
	n := e.Normalize(g)
	if g.Status != types.StatusApproved || !n.AutoRecalc || n.PowerFeeValue() != 0 {
		return false
	}
	if !e.Prices().HasPowerTier(n.Power) {
		return false
	}
	_, ok := e.Prices().PowerPrice(n.Power)
	return !ok
}

// Err converts field errors into a validation error, or nil when there are none
func Err(fieldErrors []FieldError) error {
	if len(fieldErrors) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return errors.New(errors.TypeValidation, strings.Join(msgs, "; ")).
		WithContext("fields", fieldErrors)
}

// taxNumberValidation only allows digits and hyphens
func taxNumberValidation(fl validator.FieldLevel) bool {
	return taxNumberRegex.MatchString(fl.Field().String())
}
