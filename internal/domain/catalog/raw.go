package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Helpers for reading raw (pre-normalization) records, which arrive from
// sources as map[string]any regardless of where they were loaded from.

func getString(raw map[string]any, key string) (string, bool) {
	if raw == nil {
		return "", false
	}
	if value, ok := raw[key]; ok {
		if str, ok := value.(string); ok {
			return strings.TrimSpace(str), true
		}
	}
	return "", false
}

func getBool(raw map[string]any, key string) (bool, bool) {
	if raw == nil {
		return false, false
	}
	if value, ok := raw[key]; ok {
		if b, ok := value.(bool); ok {
			return b, true
		}
	}
	return false, false
}

func getInt(raw map[string]any, key string) (int, bool) {
	if raw == nil {
		return 0, false
	}
	switch v := raw[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func getDecimal(raw map[string]any, key string) (decimal.Decimal, bool) {
	if raw == nil {
		return decimal.Zero, false
	}
	switch v := raw[key].(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, false
		}
		if d, err := decimal.NewFromString(v); err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

// extractStringSlice accepts list-shaped values in any of the shapes sources
// supply them: []string, []any of strings, or a map whose keys are the values
// (a shape some config formats produce for tag sets). Map keys are sorted so
// the result is deterministic.
func extractStringSlice(value any) []string {
	list := []string{}
	switch arr := value.(type) {
	case []any:
		for _, item := range arr {
			if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
				list = append(list, strings.TrimSpace(str))
			}
		}
	case []string:
		for _, item := range arr {
			if strings.TrimSpace(item) != "" {
				list = append(list, strings.TrimSpace(item))
			}
		}
	case map[string]any:
		for key := range arr {
			if strings.TrimSpace(key) != "" {
				list = append(list, strings.TrimSpace(key))
			}
		}
		sort.Strings(list)
	}
	return list
}

// timestampLayouts are accepted textual forms for temporal fields, tried in
// order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
}

// extractTimestamp rewrites any supported temporal value to RFC3339 UTC.
func extractTimestamp(value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339), true
	case int:
		return time.Unix(int64(v), 0).UTC().Format(time.RFC3339), true
	case int64:
		return time.Unix(v, 0).UTC().Format(time.RFC3339), true
	case float64:
		return time.Unix(int64(v), 0).UTC().Format(time.RFC3339), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", false
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC().Format(time.RFC3339), true
			}
		}
	}
	return "", false
}

func extractStringMap(value any) map[string]string {
	result := map[string]string{}
	switch m := value.(type) {
	case map[string]string:
		for k, v := range m {
			result[k] = v
		}
	case map[string]any:
		for k, v := range m {
			if str, ok := v.(string); ok {
				result[k] = str
			}
		}
	}
	return result
}

// pruneNulls returns a copy of raw with absent/null-valued keys removed.
func pruneNulls(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	dest := make(map[string]any, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		dest[k] = v
	}
	return dest
}
