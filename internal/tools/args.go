package tools

import (
	"encoding/json"
	"fmt"
)

// requireString extracts a mandatory string argument.
func requireString(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument: %s", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string", name)
	}
	return s, nil
}

// optionalString extracts an optional string argument. Absent or null
// arguments yield nil, which callers treat as "not provided".
func optionalString(args map[string]any, name string) (*string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("argument %s must be a string", name)
	}
	return &s, nil
}

// requireInt extracts a mandatory integer argument. JSON numbers decode as
// float64; json.Number is accepted for callers using a number-preserving
// decoder.
func requireInt(args map[string]any, name string) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required argument: %s", name)
	}

	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("argument %s must be an integer", name)
		}
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %s must be an integer", name)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("argument %s must be an integer", name)
	}
}

// optionalBool extracts an optional boolean argument.
func optionalBool(args map[string]any, name string) (*bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("argument %s must be a boolean", name)
	}
	return &b, nil
}
