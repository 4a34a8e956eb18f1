package task

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringSetDeduplicatesAndSorts(t *testing.T) {
	var s StringSet
	if err := json.Unmarshal([]byte(`["work","report","work","a"]`), &s); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	want := StringSet{"a", "report", "work"}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("got %v, expected %v", s, want)
	}
}

func TestStringSetMarshalSorted(t *testing.T) {
	data, err := json.Marshal(StringSet{"b", "a", "b"})
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Errorf("marshal = %s, expected [\"a\",\"b\"]", data)
	}
}

func TestColumnRoundTrips(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		val, err := StringSet{"x", "y"}.Value()
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}

		var got StringSet
		if err := got.Scan(val); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if !reflect.DeepEqual(got, StringSet{"x", "y"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("list keeps order", func(t *testing.T) {
		val, err := StringList{"bob", "alice"}.Value()
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}

		var got StringList
		if err := got.Scan(val); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if !reflect.DeepEqual(got, StringList{"bob", "alice"}) {
			t.Errorf("got %v, expected order preserved", got)
		}
	})

	t.Run("map", func(t *testing.T) {
		val, err := StringMap{"team": "finance"}.Value()
		if err != nil {
			t.Fatalf("Value() error = %v", err)
		}

		var got StringMap
		if err := got.Scan(val); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if got["team"] != "finance" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("nil column", func(t *testing.T) {
		var got StringSet
		if err := got.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) error = %v", err)
		}
		if got != nil {
			t.Errorf("got %v, expected nil", got)
		}
	})
}
