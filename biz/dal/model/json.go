package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue serializes a struct or map for storage in a TEXT column.
func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// jsonScan restores a value previously written by jsonValue.
func jsonScan(dest any, src any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dest)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported column type %T for JSON scan", src)
	}
}

// StringList stores a list of strings as a JSON TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *StringList) Scan(src any) error { return jsonScan(l, src) }

// JSONMap stores an arbitrary JSON object as a TEXT column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(m)
}

func (m *JSONMap) Scan(src any) error { return jsonScan(m, src) }
