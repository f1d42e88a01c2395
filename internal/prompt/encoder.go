package prompt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Encode renders a nested structure as compact, token-light text for prompt
// substitution: maps become indented "key: value" lines and uniform object
// lists collapse into small tables. The analyzer has no dependency on this
// format; anything JSON-marshalable encodes.
func Encode(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return ""
	}

	var b strings.Builder
	encodeValue(&b, generic, 0)
	return strings.TrimRight(b.String(), "\n")
}

func encodeValue(b *strings.Builder, v interface{}, depth int) {
	switch val := v.(type) {
	case map[string]interface{}:
		encodeMap(b, val, depth)
	case []interface{}:
		encodeList(b, "", val, depth)
	default:
		indent(b, depth)
		b.WriteString(scalar(val))
		b.WriteByte('\n')
	}
}

func encodeMap(b *strings.Builder, m map[string]interface{}, depth int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch val := m[k].(type) {
		case map[string]interface{}:
			if len(val) == 0 {
				continue
			}
			indent(b, depth)
			b.WriteString(k + ":\n")
			encodeMap(b, val, depth+1)
		case []interface{}:
			encodeList(b, k, val, depth)
		default:
			indent(b, depth)
			b.WriteString(k + ": " + scalar(val) + "\n")
		}
	}
}

func encodeList(b *strings.Builder, key string, list []interface{}, depth int) {
	if len(list) == 0 {
		return
	}

	if fields, ok := uniformFields(list); ok {
		// Uniform object list renders as a table.
		indent(b, depth)
		fmt.Fprintf(b, "%s[%d]{%s}:\n", key, len(list), strings.Join(fields, ","))
		for _, item := range list {
			row := item.(map[string]interface{})
			cells := make([]string, len(fields))
			for i, f := range fields {
				cells[i] = scalar(row[f])
			}
			indent(b, depth+1)
			b.WriteString(strings.Join(cells, ",") + "\n")
		}
		return
	}

	if allScalars(list) {
		cells := make([]string, len(list))
		for i, item := range list {
			cells[i] = scalar(item)
		}
		indent(b, depth)
		if key != "" {
			b.WriteString(key + ": ")
		}
		b.WriteString(strings.Join(cells, ", ") + "\n")
		return
	}

	indent(b, depth)
	b.WriteString(key + ":\n")
	for _, item := range list {
		encodeValue(b, item, depth+1)
	}
}

// uniformFields reports whether every element is an object with scalar
// values over one shared key set, returning those keys sorted.
func uniformFields(list []interface{}) ([]string, bool) {
	var fields []string
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		keys := make([]string, 0, len(m))
		for k, v := range m {
			switch v.(type) {
			case map[string]interface{}, []interface{}:
				return nil, false
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if i == 0 {
			fields = keys
			continue
		}
		if len(keys) != len(fields) {
			return nil, false
		}
		for j := range keys {
			if keys[j] != fields[j] {
				return nil, false
			}
		}
	}
	return fields, len(fields) > 0
}

func allScalars(list []interface{}) bool {
	for _, item := range list {
		switch item.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
	}
	return true
}

func scalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if strings.ContainsAny(val, ",\n") {
			return strconv.Quote(val)
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
