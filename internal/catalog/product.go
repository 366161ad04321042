package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ProductID identifies a product. The catalog file may carry ids as JSON
// numbers or strings; both decode to the same textual form. Numbers are
// normalised, so 1, 1.0 and 1e0 name the same product.
type ProductID string

// UnmarshalJSON accepts numeric and string ids.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a number or string: %w", err)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("product id must be a number or string: %w", err)
	}
	*id = ProductID(d.String())
	return nil
}

// MarshalJSON writes integer-looking ids back as numbers.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Product is an immutable catalog record.
type Product struct {
	ID    ProductID       `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
	Image string          `json:"image,omitempty"`
}

// MarshalJSON renders price as a JSON number.
func (p Product) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID    ProductID   `json:"id"`
		Name  string      `json:"name"`
		Price json.Number `json:"price"`
		Image string      `json:"image,omitempty"`
	}
	return json.Marshal(wire{ID: p.ID, Name: p.Name, Price: json.Number(p.Price.String()), Image: p.Image})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks a product record is usable by the cart.
func (p Product) Validate() error {
	return validate.Struct(p)
}
