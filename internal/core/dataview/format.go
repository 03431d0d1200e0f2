package dataview

import (
	"fmt"
	"strconv"
	"strings"
)

// BlankLabel is the label rendered for null category values.
const BlankLabel = "(Blank)"

// Format renders a raw value as a display label. A format string containing
// a fmt verb is applied with fmt.Sprintf; otherwise values use their natural
// representation.
func Format(v any, format string) string {
	if v == nil {
		return BlankLabel
	}

	if format != "" && strings.Contains(format, "%") {
		return fmt.Sprintf(format, v)
	}

	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// ToFloat converts a numeric series value. Numeric strings are parsed; any
// other type reports ok=false.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
