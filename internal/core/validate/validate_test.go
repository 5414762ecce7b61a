package validate

import (
	"strings"
	"testing"

	perr "animefinder/internal/platform/errors"
)

func TestDescription(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		valid bool
		msg   string
	}{
		{"empty", "", false, MsgEmpty},
		{"whitespace", " \t\n ", false, MsgEmpty},
		{"short", "hi", false, MsgTooShort},
		{"ten multibyte runes", "ナルトが走っている村", true, ""},
		{"nine padded", "  123456789  ", false, MsgTooShort},
		{"exactly ten", "1234567890", true, ""},
		{"too long", strings.Repeat("x", 1001), false, MsgTooLong},
		{"max", strings.Repeat("x", 1000), true, ""},
		{"long padded", "  " + strings.Repeat("x", 1000) + "  ", true, ""},
		{"multibyte counted as runes", strings.Repeat("é", 1000), true, ""},
		{"valid", "a valid ten+ char description", true, ""},
	}
	for _, c := range cases {
		got := Description(c.in)
		if got.Valid != c.valid || got.Message != c.msg {
			t.Fatalf("%s: Description = %+v, want valid=%v msg=%q", c.name, got, c.valid, c.msg)
		}
	}
}

func TestResultErr(t *testing.T) {
	if err := Description("a valid ten+ char description").Err(); err != nil {
		t.Fatalf("valid result returned err: %v", err)
	}

	err := Description("").Err()
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("expected *perr.Error, got %T", err)
	}
	if e.Code() != perr.ErrorCodeValidation || e.Field() != "description" || e.Message() != MsgEmpty {
		t.Fatalf("unexpected error: code=%v field=%q msg=%q", e.Code(), e.Field(), e.Message())
	}
}
