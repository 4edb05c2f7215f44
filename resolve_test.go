package tpl2pdf

import (
	"reflect"
	"testing"
)

func TestResolvePath(t *testing.T) {
	ctx := map[string]any{
		"name": "Acme",
		"user": map[string]any{
			"name": "Ada",
			"address": map[string]any{
				"city": "Paris",
			},
		},
		"tags":  []any{"a", "b"},
		"count": 3,
		"env":   map[string]string{"region": "eu"},
	}

	tests := []struct {
		name     string
		path     string
		want     any
		wantFind bool
	}{
		{name: "top-level key", path: "name", want: "Acme", wantFind: true},
		{name: "nested key", path: "user.name", want: "Ada", wantFind: true},
		{name: "deeply nested key", path: "user.address.city", want: "Paris", wantFind: true},
		{name: "intermediate map value", path: "user.address", want: map[string]any{"city": "Paris"}, wantFind: true},
		{name: "string map descent", path: "env.region", want: "eu", wantFind: true},
		{name: "missing top-level key", path: "missing", wantFind: false},
		{name: "missing nested key", path: "user.missing", wantFind: false},
		{name: "descent through non-map", path: "count.value", wantFind: false},
		{name: "descent through sequence", path: "tags.0", wantFind: false},
		{name: "empty path", path: "", wantFind: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := resolvePath(tt.path, ctx)
			if found != tt.wantFind {
				t.Fatalf("resolvePath(%q) found = %v, want %v", tt.path, found, tt.wantFind)
			}
			if found && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolvePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolvePathDoesNotMutate(t *testing.T) {
	ctx := map[string]any{
		"user": map[string]any{"name": "Ada"},
	}

	_, _ = resolvePath("user.name", ctx)
	_, _ = resolvePath("user.missing", ctx)

	inner, ok := ctx["user"].(map[string]any)
	if !ok {
		t.Fatal("inner map type changed")
	}
	if len(ctx) != 1 || len(inner) != 1 || inner["name"] != "Ada" {
		t.Errorf("context mutated: %v", ctx)
	}
}

func TestAsStringMap(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		wantOK bool
	}{
		{name: "map string any", value: map[string]any{"a": 1}, wantOK: true},
		{name: "map string string", value: map[string]string{"a": "b"}, wantOK: true},
		{name: "slice", value: []any{1}, wantOK: false},
		{name: "string", value: "x", wantOK: false},
		{name: "nil", value: nil, wantOK: false},
		{name: "int keyed map", value: map[int]any{1: "a"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := asStringMap(tt.value)
			if ok != tt.wantOK {
				t.Errorf("asStringMap(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
		})
	}
}

func TestAsSequence(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantLen int
		wantOK  bool
	}{
		{name: "any slice", value: []any{1, 2}, wantLen: 2, wantOK: true},
		{name: "string slice", value: []string{"a", "b", "c"}, wantLen: 3, wantOK: true},
		{name: "map slice", value: []map[string]any{{"a": 1}}, wantLen: 1, wantOK: true},
		{name: "int slice", value: []int{1, 2, 3}, wantLen: 3, wantOK: true},
		{name: "float slice", value: []float64{1.5}, wantLen: 1, wantOK: true},
		{name: "empty slice", value: []any{}, wantLen: 0, wantOK: true},
		{name: "string", value: "abc", wantOK: false},
		{name: "map", value: map[string]any{"a": 1}, wantOK: false},
		{name: "nil", value: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asSequence(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("asSequence(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if ok && len(got) != tt.wantLen {
				t.Errorf("asSequence(%v) len = %d, want %d", tt.value, len(got), tt.wantLen)
			}
		})
	}
}
