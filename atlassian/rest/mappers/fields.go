package mappers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func requireNonEmptyString(value string, path string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("%s is required", path)
	}
	return clean, nil
}

func requireStringField(obj map[string]any, key string, path string) (string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s.%s is required", path, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s.%s must be a string", path, key)
	}
	return requireNonEmptyString(s, path+"."+key)
}

// requireIDField accepts both numeric ids (agile API) and string ids (platform API).
func requireIDField(obj map[string]any, key string, path string) (string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s.%s is required", path, key)
	}
	switch v := raw.(type) {
	case string:
		return requireNonEmptyString(v, path+"."+key)
	case float64:
		if v != math.Trunc(v) {
			return "", fmt.Errorf("%s.%s must be an integer", path, key)
		}
		return strconv.FormatInt(int64(v), 10), nil
	default:
		return "", fmt.Errorf("%s.%s must be a string or number", path, key)
	}
}

func requireMapField(obj map[string]any, key string, path string) (map[string]any, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%s.%s is required", path, key)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s.%s must be an object", path, key)
	}
	return m, nil
}

func optionalStringField(obj map[string]any, key string) (*string, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string", key)
	}
	clean := strings.TrimSpace(s)
	if clean == "" {
		return nil, nil
	}
	return &clean, nil
}

// ObjectList returns obj[key] as a list of objects. A missing or null key is an
// empty list.
func ObjectList(obj map[string]any, key string, path string) ([]map[string]any, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s.%s must be a list", path, key)
	}
	out := make([]map[string]any, 0, len(arr))
	for idx, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.%s[%d] must be an object", path, key, idx)
		}
		out = append(out, m)
	}
	return out, nil
}

func OptionalInt(obj map[string]any, key string) (*int, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	v := int(f)
	return &v, nil
}
