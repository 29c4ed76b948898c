package converter

import (
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// cellValue converts a raw cell value into the JSON scalar it should become.
// Text cells stay strings even when they look numeric.
func cellValue(cellType excelize.CellType, raw string) any {
	if raw == "" {
		return nil
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true"
	case excelize.CellTypeError:
		return raw
	}
	return parseValue(raw)
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// NaN and Inf have no JSON form
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
