// Package units converts weights and dimensions between the unit systems a
// store and a carrier may use. Conversions go through a canonical unit (kg
// for weight, cm for dimensions) with fixed multiplicative factors, and no
// rounding happens here; callers round with the formatting helpers when they
// build a carrier request.
package units

import (
	"math"
	"strings"
)

// Supported weight units.
const (
	Kilogram = "kg"
	Pound    = "lbs"
	Ounce    = "oz"
	Gram     = "g"
)

// Supported dimension units.
const (
	Centimeter = "cm"
	Inch       = "in"
	Meter      = "m"
	Millimeter = "mm"
	Yard       = "yd"
)

// Factors to the canonical unit (kg / cm). Unknown units fall back to a
// factor of 1, i.e. they are treated as already canonical.
var (
	weightToKg = map[string]float64{
		Kilogram: 1,
		Pound:    0.453592,
		Ounce:    0.0283495,
		Gram:     0.001,
	}
	dimensionToCm = map[string]float64{
		Centimeter: 1,
		Inch:       2.54,
		Meter:      100,
		Millimeter: 0.1,
		Yard:       91.44,
	}
)

// normalizeWeightUnit maps the unit spellings carriers use (KG, LBS, OZS)
// onto the canonical lowercase names.
func normalizeWeightUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "ozs" {
		u = Ounce
	}
	return u
}

func normalizeDimensionUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// ConvertWeight converts a weight between two units. The identity path
// returns the input untouched so repeated conversions cannot drift.
func ConvertWeight(value float64, from, to string) float64 {
	from, to = normalizeWeightUnit(from), normalizeWeightUnit(to)
	if from == to {
		return value
	}

	kg := value
	if f, ok := weightToKg[from]; ok {
		kg = value * f
	}
	if f, ok := weightToKg[to]; ok {
		return kg / f
	}
	return kg
}

// ConvertDimension converts a length between two units. The identity path
// returns the input untouched.
func ConvertDimension(value float64, from, to string) float64 {
	from, to = normalizeDimensionUnit(from), normalizeDimensionUnit(to)
	if from == to {
		return value
	}

	cm := value
	if f, ok := dimensionToCm[from]; ok {
		cm = value * f
	}
	if f, ok := dimensionToCm[to]; ok {
		return cm / f
	}
	return cm
}

// FormatMeasurement rounds a converted measurement to the two decimal places
// the carrier accepts for weights.
func FormatMeasurement(value float64) float64 {
	return math.Round(value*100) / 100
}

// RoundDimension rounds a converted dimension to the nearest whole unit; the
// rate API rejects fractional dimensions.
func RoundDimension(value float64) float64 {
	return math.Round(value)
}
