package inference

import "strings"

var gramsPerUnit = map[string]float64{
	"g":         1,
	"gram":      1,
	"grams":     1,
	"kg":        1000,
	"kilogram":  1000,
	"kilograms": 1000,
	"lb":        453.59237,
	"lbs":       453.59237,
	"pound":     453.59237,
	"pounds":    453.59237,
	"oz":        28.349523125,
	"ounce":     28.349523125,
	"ounces":    28.349523125,
}

// ToGrams converts value in unit to grams. Unknown units pass through unchanged.
func ToGrams(value float64, unit string) float64 {
	factor, ok := gramsPerUnit[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return value
	}
	return value * factor
}
