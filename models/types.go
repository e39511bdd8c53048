package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringSliceType stores a list of strings as a JSON column (SEO keywords).
type StringSliceType []string

func (ss StringSliceType) Value() (driver.Value, error) {
	if ss == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(ss))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (ss *StringSliceType) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*ss = StringSliceType{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSliceType", value)
	}
	if len(raw) == 0 {
		*ss = StringSliceType{}
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(ss))
}

func (StringSliceType) GormDataType() string {
	return "json"
}

func (ss StringSliceType) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// Normalize trims entries, drops blanks and removes case-insensitive duplicates.
func (ss StringSliceType) Normalize() StringSliceType {
	out := make(StringSliceType, 0, len(ss))
	seen := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
