package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// defaultFractionDigits is used for codes go-money does not know.
const defaultFractionDigits = 2

// FormatMoney renders an amount in the display format of its ISO 4217 currency.
// Example: 1234.5 with USD returns "$1,234.50"
// Example: 1234.5 with JPY returns "¥1,235"
// Unknown currency codes fall back to two decimals followed by the code, e.g. "1234.50 XYZ".
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	cur := money.GetCurrency(code)
	if cur == nil {
		if code == "" {
			return amount.StringFixed(defaultFractionDigits)
		}
		return amount.StringFixed(defaultFractionDigits) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
