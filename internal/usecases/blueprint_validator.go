package usecases

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"token-forge.backend/internal/domain/entities"
	domainerrors "token-forge.backend/internal/domain/errors"
)

// Blueprint fields in the order violations are reported.
var blueprintFieldOrder = []string{
	"body",
	"name",
	"symbol",
	"decimals",
	"total_supply",
	"chain",
	"description",
	"image_url",
	"website",
	"twitter",
	"telegram",
	"owner_wallet",
	"features",
}

const (
	msgRequired      = "field required"
	msgString        = "must be a string"
	msgInteger       = "must be an integer"
	msgNumber        = "must be a number"
	msgStringList    = "must be a list of strings"
	msgObjectPayload = "must be a JSON object"
)

// BlueprintValidator turns an arbitrary JSON payload into a BlueprintInput,
// reporting every violated constraint at once.
type BlueprintValidator struct {
	validate *validator.Validate
}

// NewBlueprintValidator creates a validator whose field names follow the JSON tags.
func NewBlueprintValidator() *BlueprintValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &BlueprintValidator{validate: v}
}

// Decode validates body. On failure the error is a *errors.ValidationError.
func (v *BlueprintValidator) Decode(body []byte) (*entities.BlueprintInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, domainerrors.NewValidationError(domainerrors.FieldViolation{Field: "body", Message: msgObjectPayload})
	}

	d := &fieldDecoder{raw: raw, flagged: map[string]bool{}}
	in := entities.NewBlueprintInput()

	d.requiredString("name", &in.Name)
	d.requiredString("symbol", &in.Symbol)
	d.integer("decimals", &in.Decimals)
	d.requiredNumber("total_supply", &in.TotalSupply)
	d.defaultedString("chain", &in.Chain)
	d.optionalString("description", &in.Description)
	d.optionalString("image_url", &in.ImageURL)
	d.optionalString("website", &in.Website)
	d.optionalString("twitter", &in.Twitter)
	d.optionalString("telegram", &in.Telegram)
	d.optionalString("owner_wallet", &in.OwnerWallet)
	d.stringList("features", &in.Features)

	if err := v.validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		for _, fe := range verrs {
			if d.flagged[fe.Field()] {
				continue
			}
			d.add(fe.Field(), constraintMessage(fe))
		}
	}

	if !d.verr.HasViolations() {
		return &in, nil
	}
	sortViolations(d.verr.Violations)
	return nil, &d.verr
}

func constraintMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be greater than or equal to " + fe.Param()
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	}
	return "failed " + fe.Tag() + " constraint"
}

func sortViolations(vs []domainerrors.FieldViolation) {
	rank := make(map[string]int, len(blueprintFieldOrder))
	for i, f := range blueprintFieldOrder {
		rank[f] = i
	}
	sort.SliceStable(vs, func(i, j int) bool {
		return rank[vs[i].Field] < rank[vs[j].Field]
	})
}

type fieldDecoder struct {
	raw     map[string]json.RawMessage
	verr    domainerrors.ValidationError
	flagged map[string]bool
}

func (d *fieldDecoder) add(field, msg string) {
	d.flagged[field] = true
	d.verr.Add(field, msg)
}

// lookup returns the raw value and whether it is present and non-null.
func (d *fieldDecoder) lookup(field string) (json.RawMessage, bool, bool) {
	raw, present := d.raw[field]
	if !present {
		return nil, false, false
	}
	isNull := bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
	return raw, true, isNull
}

func (d *fieldDecoder) requiredString(field string, dst *string) {
	raw, present, isNull := d.lookup(field)
	switch {
	case !present:
		d.add(field, msgRequired)
	case isNull:
		d.add(field, msgString)
	default:
		if err := json.Unmarshal(raw, dst); err != nil {
			d.add(field, msgString)
		}
	}
}

func (d *fieldDecoder) defaultedString(field string, dst *string) {
	raw, present, isNull := d.lookup(field)
	switch {
	case !present:
	case isNull:
		d.add(field, msgString)
	default:
		if err := json.Unmarshal(raw, dst); err != nil {
			d.add(field, msgString)
		}
	}
}

func (d *fieldDecoder) optionalString(field string, dst **string) {
	raw, present, isNull := d.lookup(field)
	if !present || isNull {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.add(field, msgString)
		return
	}
	*dst = &s
}

func (d *fieldDecoder) integer(field string, dst *int) {
	raw, present, isNull := d.lookup(field)
	switch {
	case !present:
		return
	case isNull:
		d.add(field, msgInteger)
		return
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		d.add(field, msgInteger)
		return
	}
	*dst = int(f)
}

func (d *fieldDecoder) requiredNumber(field string, dst *float64) {
	raw, present, isNull := d.lookup(field)
	switch {
	case !present:
		d.add(field, msgRequired)
	case isNull:
		d.add(field, msgNumber)
	default:
		if err := json.Unmarshal(raw, dst); err != nil {
			d.add(field, msgNumber)
		}
	}
}

func (d *fieldDecoder) stringList(field string, dst *[]string) {
	raw, present, isNull := d.lookup(field)
	if !present || isNull {
		return
	}
	// Decoding through pointers keeps null elements distinguishable from "".
	var items []*string
	if err := json.Unmarshal(raw, &items); err != nil {
		d.add(field, msgStringList)
		return
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			d.add(field, msgStringList)
			return
		}
		list = append(list, *item)
	}
	*dst = list
}
