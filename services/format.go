package services

import (
	"fmt"
	"strings"
)

// FormatAmount formats a float64 amount with thousands grouping and exactly
// 2 decimal places, e.g. 1234567.8 -> "1,234,567.80". All monetary values the
// app displays go through this.
func FormatAmount(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatMoney renders an amount together with its ISO currency code,
// e.g. FormatMoney(1500, "USD") -> "1,500.00 USD".
func FormatMoney(amount float64, currency string) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return FormatAmount(amount)
	}
	return FormatAmount(amount) + " " + currency
}

// groupThousands inserts commas into an integer string every 3 digits from
// the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
