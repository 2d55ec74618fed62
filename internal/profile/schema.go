package profile

// BuildProfileJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Profile files are validated against it before decoding so
// that malformed configuration fails fast with a usable message.
func BuildProfileJSONSchema() map[string]any {
	fieldRule := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":    map[string]any{"type": "string", "minLength": 1},
			"pattern": map[string]any{"type": "string", "minLength": 1},
			"group":   map[string]any{"type": "integer", "minimum": 1},
			"type":    map[string]any{"type": "string", "enum": []any{"string", "date", "number"}},
			"target":  map[string]any{"type": "string", "enum": []any{"metadata", "customer", "vendor"}},
		},
		"required": []any{"name", "pattern"},
	}
	section := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"fields": map[string]any{"type": "array", "items": fieldRule},
		},
	}
	column := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":  map[string]any{"type": "string", "minLength": 1},
			"index": map[string]any{"type": "integer", "minimum": 0},
			"group": map[string]any{"type": "integer", "minimum": 1},
			"type":  map[string]any{"type": "string", "enum": []any{"string", "date", "number"}},
		},
		"required": []any{"name"},
	}
	columns := map[string]any{"type": "array", "items": column}
	keywordList := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"vendor": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "minLength": 1},
					"currency": map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
					"language": map[string]any{"type": "string"},
				},
				"required": []any{"name"},
			},
			"header": section,
			"footer": section,
			"table": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"strategy": map[string]any{
						"type": "string",
						"enum": []any{"structured-table", "line-regex", "block-regex"},
					},
					"start_marker":    map[string]any{"type": "string"},
					"end_marker":      map[string]any{"type": "string"},
					"row_pattern":     map[string]any{"type": "string"},
					"row_pattern_alt": map[string]any{"type": "string"},
					"columns":         columns,
					"columns_alt":     columns,
					"header_keywords": keywordList,
					"min_columns":     map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []any{"strategy"},
			},
			"preprocess": map[string]any{"type": "string", "enum": []any{"deduplicate"}},
			"capabilities": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"merge_multiline_rows":     map[string]any{"type": "boolean"},
					"missing_total_means_free": map[string]any{"type": "boolean"},
					"merge_negative_rows":      map[string]any{"type": "boolean"},
				},
			},
			"shipping_keywords": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"marker_skus": keywordList,
					"strict":      keywordList,
					"loose":       keywordList,
				},
			},
			"annotations": keywordList,
		},
		"required": []any{"vendor", "table"},
	}
}
