package i18n

import (
	"fmt"
	"math"
	"strings"
)

// LocaleFormat renders money amounts. It is immutable after creation.
type LocaleFormat struct {
	decimalSeparator  string
	thousandSeparator string
	currencySymbol    string
	currencyAfter     bool
}

// LocaleFormatOption configures a LocaleFormat.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a format. The default is "$" before the amount,
// "." as decimal separator and no grouping, so 1234.5 renders "$1234.50".
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimalSeparator: ".",
		currencySymbol:   "$",
	}
	for _, opt := range opts {
		opt(lf)
	}
	return lf
}

// WithDecimalSeparator sets the decimal separator.
func WithDecimalSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.decimalSeparator = sep
	}
}

// WithThousandSeparator enables digit grouping with sep.
func WithThousandSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.thousandSeparator = sep
	}
}

// WithCurrencySymbol sets the currency symbol.
func WithCurrencySymbol(symbol string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencySymbol = symbol
	}
}

// WithCurrencyAfter places the symbol after the amount, separated by a space.
func WithCurrencyAfter() LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencyAfter = true
	}
}

// FormatCurrency renders amount with exactly two decimals.
func (lf *LocaleFormat) FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	num := lf.FormatAmount(amount)

	result := lf.currencySymbol + num
	if lf.currencyAfter {
		result = num + " " + lf.currencySymbol
	}
	if negative {
		result = "-" + result
	}
	return result
}

// FormatAmount renders a non-negative amount with two decimals and no symbol.
func (lf *LocaleFormat) FormatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(amount))
	intPart, decPart, _ := strings.Cut(s, ".")
	return lf.group(intPart) + lf.decimalSeparator + decPart
}

func (lf *LocaleFormat) group(digits string) string {
	if lf.thousandSeparator == "" || len(digits) <= 3 {
		return digits
	}

	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := max(0, i-3)
		parts = append([]string{digits[start:i]}, parts...)
	}
	return strings.Join(parts, lf.thousandSeparator)
}
