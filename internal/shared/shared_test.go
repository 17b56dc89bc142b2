package shared

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Error("expected non-empty IDs")
	}
	if a == b {
		t.Error("expected unique IDs")
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("expected UUID format, got %s", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(map[string]int{"a": 1}, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"a":1}` {
			t.Errorf("unexpected output: %s", data)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		data, err := MarshalJSON(map[string]int{"a": 1}, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "\n") {
			t.Error("expected indented output")
		}
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for unmarshalable value")
		}
	})
}

func TestValidateFilename(t *testing.T) {
	t.Run("accepts safe names", func(t *testing.T) {
		for _, name := range []string{"My Mix", "weekly #12", "lowercase", "ünïcode"} {
			if err := ValidateFilename(name); err != nil {
				t.Errorf("ValidateFilename(%q) = %v, want nil", name, err)
			}
		}
	})

	t.Run("rejects empty and blank names", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			if err := ValidateFilename(name); err == nil {
				t.Errorf("ValidateFilename(%q) should fail", name)
			}
		}
	})

	t.Run("rejects reserved characters", func(t *testing.T) {
		for _, name := range []string{"a/b", `a\b`, "a:b", "a*b", "a?b", `a"b`, "a<b", "a>b", "a|b"} {
			if err := ValidateFilename(name); err == nil {
				t.Errorf("ValidateFilename(%q) should fail", name)
			}
		}
	})
}
