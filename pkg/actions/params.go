package actions

import "fmt"

// Parameter extraction helpers. Model-supplied params arrive as decoded
// JSON, so numbers are float64 and arrays are []any.

func floatParam(params map[string]any, key string, required bool) (float64, error) {
	v, ok := params[key]
	if !ok {
		if required {
			return 0, fmt.Errorf("missing required parameter %q", key)
		}
		return 0, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("parameter %q must be a number, got %T", key, v)
	}
	return f, nil
}

func unitFloatParam(params map[string]any, key string) (float64, error) {
	f, err := floatParam(params, key, true)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("parameter %q must be between 0.0 and 1.0, got %.2f", key, f)
	}
	return f, nil
}

func stringParam(params map[string]any, key string, required bool) (string, error) {
	v, ok := params[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing required parameter %q", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

func boolParam(params map[string]any, key string) (bool, error) {
	v, ok := params[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

func stringSliceParam(params map[string]any, key string) ([]string, error) {
	v, ok := params[key]
	if !ok {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an array of strings, got %T", key, v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must contain only strings, got %T", key, item)
		}
		out = append(out, s)
	}
	return out, nil
}
