package recipe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberToken matches integer or decimal quantities inside an ingredient
// line. Both "1.5" and the Turkish "1,5" spelling are accepted.
var numberToken = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// ScaleIngredient multiplies every numeric token in a free-text ingredient
// line by factor, leaving units and words untouched: "200 gr un" scaled by 2
// becomes "400 gr un". Lines without numbers come back unchanged. Results
// are rounded to two decimals and trailing zeros are trimmed; a token
// written with a decimal comma keeps the comma.
func ScaleIngredient(line string, factor float64) string {
	if factor <= 0 {
		return line
	}
	return numberToken.ReplaceAllStringFunc(line, func(token string) string {
		comma := strings.Contains(token, ",")
		normalized := strings.ReplaceAll(token, ",", ".")
		value, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return token
		}

		scaled := math.Round(value*factor*100) / 100
		formatted := strconv.FormatFloat(scaled, 'f', -1, 64)
		if comma {
			formatted = strings.ReplaceAll(formatted, ".", ",")
		}
		return formatted
	})
}

// ScaleIngredients scales a whole ingredient list, preserving order.
func ScaleIngredients(lines []string, factor float64) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ScaleIngredient(line, factor)
	}
	return out
}
