package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/habistudio/habi-backend/pkg/types"
)

const rangeSeparator = " - "

// CalculateTotal multiplies a unit price by a quantity. Flat prices scale
// numerically. Range prices of the form "low - high" scale both bounds and
// keep the separator, so "5500 - 6000" at quantity 2 becomes "11000 - 12000".
// Any price string that does not parse as a range is returned unchanged.
func CalculateTotal(unit types.Amount, quantity int) types.Amount {
	if quantity < 0 {
		quantity = 0
	}
	if unit.IsFlat() {
		return types.FlatAmount(unit.Value() * int64(quantity))
	}
	scaled, ok := scaleRange(unit.Raw(), quantity)
	if !ok {
		return unit
	}
	return types.RawAmount(scaled)
}

func scaleRange(raw string, quantity int) (string, bool) {
	parts := strings.Split(raw, rangeSeparator)
	if len(parts) != 2 {
		return "", false
	}
	low, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", false
	}
	highPart, suffix := splitCurrencySuffix(strings.TrimSpace(parts[1]))
	high, err := decimal.NewFromString(highPart)
	if err != nil {
		return "", false
	}
	qty := decimal.NewFromInt(int64(quantity))
	scaled := fmt.Sprintf("%s%s%s", low.Mul(qty), rangeSeparator, high.Mul(qty))
	if suffix != "" {
		scaled += " " + suffix
	}
	return scaled, true
}

// splitCurrencySuffix peels a trailing currency marker ("2500 PHP") off the
// high bound so the number underneath can still scale.
func splitCurrencySuffix(s string) (string, string) {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}
