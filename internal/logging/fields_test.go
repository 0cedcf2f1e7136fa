package logging

import (
	"log/slog"
	"testing"
)

func TestWithCommon(t *testing.T) {
	existing := slog.String("existing", "x")
	for _, tc := range []struct {
		name    string
		service string
		version string
		want    []string
	}{
		{"both", "fpl-dashboard", "v1", []string{"existing", FieldService, FieldVersion}},
		{"service only", "fpl-dashboard", "", []string{"existing", FieldService}},
		{"neither", "", "", []string{"existing"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			attrs := WithCommon([]slog.Attr{existing}, tc.service, tc.version)
			if len(attrs) != len(tc.want) {
				t.Fatalf("expected %d attrs, got %+v", len(tc.want), attrs)
			}
			for i, key := range tc.want {
				if attrs[i].Key != key {
					t.Fatalf("attr %d: expected %q, got %q", i, key, attrs[i].Key)
				}
			}
		})
	}
}

func TestFieldKeysAreDistinct(t *testing.T) {
	keys := []string{
		FieldService, FieldVersion, FieldProvider, FieldRequestID, FieldPath,
		FieldMethod, FieldStatusCode, FieldView, FieldTab, FieldCache,
		FieldDate, FieldCount, FieldDurationMS, FieldError,
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate field key %q", k)
		}
		seen[k] = true
	}
}
