package quote

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativePrice     = errors.New("unit price is negative")
	ErrNegativeQuantity  = errors.New("quantity is negative")
	ErrTaxRateOutOfRange = errors.New("tax rate outside 0-100")
	ErrNonFiniteNumber   = errors.New("number is not finite")
	ErrNoItems           = errors.New("quote has no line items")
)

// ItemError 指明出错的行 / ItemError names the offending row
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index+1, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// ValidateItem 严格模式下的单行校验
// ValidateItem checks a single row in strict mode
func ValidateItem(item LineItem) error {
	for _, v := range []float64{item.UnitPrice, item.Quantity, item.TaxRate} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFiniteNumber
		}
	}
	if item.UnitPrice < 0 {
		return ErrNegativePrice
	}
	if item.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if item.TaxRate < 0 || item.TaxRate > 100 {
		return ErrTaxRateOutOfRange
	}
	return nil
}

// Validate 校验整张草稿，返回所有行错误的合并
// Validate checks the whole draft and joins every row error
func (d Draft) Validate() error {
	if len(d.Items) == 0 {
		return ErrNoItems
	}
	var errs []error
	for i, item := range d.Items {
		if err := ValidateItem(item); err != nil {
			errs = append(errs, &ItemError{Index: i, Err: err})
		}
	}
	return errors.Join(errs...)
}
