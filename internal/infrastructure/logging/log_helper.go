package logging

func logParamsToZapParams(keys map[ExtraKey]any) []any {
	params := make([]any, 0, 2*len(keys))
	for k, v := range keys {
		params = append(params, string(k), v)
	}
	return params
}

func logParamsToZeroParams(keys map[ExtraKey]any) map[string]any {
	params := make(map[string]any, len(keys))
	for k, v := range keys {
		params[string(k)] = v
	}
	return params
}
