package venue

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// Filter narrows the venue list. Zero values match everything.
type Filter struct {
	City     string
	Category string
	MaxPrice *decimal.Decimal
}

// FilterInput is the raw query string of the filter form, echoed back to the page.
type FilterInput struct {
	City     string `form:"city" json:"city"`
	Category string `form:"category" json:"category"`
	MaxPrice string `form:"max_price" json:"max_price"`
}

// priceIntegerDigits is the integer part of a NUMERIC(10, 2) price column.
const priceIntegerDigits = 8

var (
	largestPrice = decimal.RequireFromString("99999999.99")
	smallestStep = decimal.New(1, -2)
)

// ParseFilter builds a Filter from raw query values.
// A max price that is not a number is ignored, as is one above any storable price.
func ParseFilter(city, category, maxPrice string) Filter {
	f := Filter{City: city, Category: category}
	if maxPrice != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(maxPrice)); err == nil {
			if bound, ok := priceBound(d); ok {
				f.MaxPrice = &bound
			}
		}
	}
	return f
}

// priceBound maps a max price onto the cents grid of the price column, so the
// query parameter always fits NUMERIC(10, 2). ok is false when every price matches.
func priceBound(d decimal.Decimal) (bound decimal.Decimal, ok bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}
	// Digits left of the decimal point; <= -2 means |d| < 0.01.
	magnitude := d.NumDigits() + int(d.Exponent())
	switch {
	case magnitude > priceIntegerDigits && d.IsPositive():
		return decimal.Decimal{}, false
	case magnitude > priceIntegerDigits:
		return largestPrice.Neg(), true
	case magnitude <= -2 && d.IsPositive():
		return decimal.Zero, true
	case magnitude <= -2:
		return smallestStep.Neg(), true
	}
	// Prices carry two decimals, so flooring keeps the inclusive comparison exact.
	return d.RoundFloor(2), true
}

// Filter parses the input into a Filter.
func (in FilterInput) Filter() Filter {
	return ParseFilter(in.City, in.Category, in.MaxPrice)
}

// Apply adds the filter predicates to a query over "venues v" joined with "categories c".
// City and category match case-insensitively; price is inclusive.
func (f Filter) Apply(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.City != "" {
		q = q.Where("upper(v.city) = upper(?)", f.City)
	}
	if f.Category != "" {
		q = q.Where("upper(c.name) = upper(?)", f.Category)
	}
	if f.MaxPrice != nil {
		q = q.Where(squirrel.LtOrEq{"v.price_per_hour": f.MaxPrice.String()})
	}
	return q
}
