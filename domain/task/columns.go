package task

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// The collection fields of a task are stored as JSON text columns. Each
// type implements driver.Valuer and sql.Scanner so GORM can round-trip
// them through a TEXT column.

// StringSet is an unordered, deduplicated collection of strings. It
// marshals as a sorted JSON array.
type StringSet []string

// Contains reports whether the set holds v.
func (s StringSet) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

func normalizeSet(items []string) StringSet {
	seen := make(map[string]struct{}, len(items))
	out := make(StringSet, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = normalizeSet(items)
	return nil
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(normalizeSet(s)))
}

func (s StringSet) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSet) Scan(value any) error {
	return scanJSONColumn(value, s)
}

// StringList is an ordered sequence of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value any) error {
	return scanJSONColumn(value, l)
}

// StringMap is a string-to-string mapping with no ordering guarantees.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		m = StringMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *StringMap) Scan(value any) error {
	return scanJSONColumn(value, m)
}

func scanJSONColumn(value, dest any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
