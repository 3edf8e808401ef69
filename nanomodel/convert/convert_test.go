package convert

import (
	"testing"
	"time"
)

func TestBuiltins(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		fn   Func
		in   any
		want any
	}{
		{name: "string from int", fn: ToString, in: 42, want: "42"},
		{name: "string nil", fn: ToString, in: nil, want: nil},
		{name: "integer from string", fn: ToInteger, in: "12", want: int64(12)},
		{name: "integer from float", fn: ToInteger, in: 3.9, want: int64(3)},
		{name: "integer garbage", fn: ToInteger, in: "twelve", want: nil},
		{name: "float from string", fn: ToFloat, in: "1.5", want: 1.5},
		{name: "float garbage", fn: ToFloat, in: []int{1}, want: nil},
		{name: "boolean from string", fn: ToBoolean, in: "true", want: true},
		{name: "boolean from int", fn: ToBoolean, in: 0, want: false},
		{name: "boolean garbage", fn: ToBoolean, in: "maybe", want: nil},
		{name: "date passthrough", fn: ToDate, in: when, want: when},
		{name: "date garbage", fn: ToDate, in: "not a date", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDateFromString(t *testing.T) {
	got, ok := ToDate("2024-03-01T12:00:00Z").(time.Time)
	if !ok {
		t.Fatal("expected time.Time")
	}
	if !got.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected time %v", got)
	}
}

func TestRegister(t *testing.T) {
	original := registry
	defer func() { registry = original }()
	registry = map[string]Func{}

	upper := func(v any) any { return v }

	if err := Register("upper", upper); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := Register("upper", upper); err == nil {
		t.Error("expected duplicate registration error")
	}
	if err := Register("Upper", upper); err == nil {
		t.Error("expected invalid name error")
	}
	if err := Register("nil-fn", nil); err == nil {
		t.Error("expected nil function error")
	}
	if _, ok := Lookup("upper"); !ok {
		t.Error("expected upper to be registered")
	}
	if _, ok := Lookup("missing"); ok {
		t.Error("expected missing to be absent")
	}
}
