package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GSTRate applied on invoice subtotals.
var GSTRate = decimal.NewFromFloat(0.05)

// Money converts a stored float amount for display arithmetic.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return Money(amount).StringFixed(2)
}

// FormatINR renders an amount as "₹1,23,456.50" using Indian digit grouping.
func FormatINR(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(intPart) + "." + frac
}

// GST returns the tax on a subtotal, rounded to paise.
func GST(subtotal float64) decimal.Decimal {
	return Money(subtotal).Mul(GSTRate).Round(2)
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
