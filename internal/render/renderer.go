// Package render turns an aggregated shopping list into downloadable
// documents.
package render

import (
	"math"
	"strconv"

	"github.com/avolkova/foodgram-backend/internal/app/service"
)

// Renderer produces one document format for a shopping list.
type Renderer interface {
	Render(items []service.ShoppingListItem) ([]byte, error)
	ContentType() string
	Extension() string
}

// amountPrecision bounds the decimals shown for a summed amount. Recipe
// quantities never need more, and rounding first hides float64 accumulation
// noise (0.1+0.2 must print as "0.3").
const amountPrecision = 1e6

// FormatAmount prints an amount with the fewest digits needed, so 300 stays
// "300" and 0.5 stays "0.5".
func FormatAmount(v float64) string {
	v = math.Round(v*amountPrecision) / amountPrecision
	return strconv.FormatFloat(v, 'f', -1, 64)
}
