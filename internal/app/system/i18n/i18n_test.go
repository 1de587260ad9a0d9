package i18n

import "testing"

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	locales := c.Locales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "ta" {
		t.Fatalf("locales = %v, want [en ta]", locales)
	}
}

func TestEveryKeyIsTranslated(t *testing.T) {
	c := MustLoad()
	en := c.Keys("en")
	ta := map[string]bool{}
	for _, k := range c.Keys("ta") {
		ta[k] = true
	}
	for _, k := range en {
		if !ta[k] {
			t.Errorf("key %q has no Tamil text", k)
		}
	}
	if len(ta) != len(en) {
		t.Errorf("Tamil has %d keys, English %d", len(ta), len(en))
	}
}

func TestTranslateFallbacks(t *testing.T) {
	c, err := Parse([]byte(`{"en":{"a":"A","greet":"Hello, %s!"},"ta":{"a":"அ"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tests := []struct {
		name   string
		locale string
		key    string
		args   []any
		want   string
	}{
		{"tamil", "ta", "a", nil, "அ"},
		{"english", "en", "a", nil, "A"},
		{"falls back to english", "ta", "greet", []any{"Chennai"}, "Hello, Chennai!"},
		{"unknown locale", "fr", "a", nil, "A"},
		{"missing key", "ta", "nope", nil, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.T(tt.locale, tt.key, tt.args...); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
			}
		})
	}

	if got := c.For("ta")("a"); got != "அ" {
		t.Errorf("For(ta)(a) = %q", got)
	}
}

func TestParseRequiresEnglish(t *testing.T) {
	if _, err := Parse([]byte(`{"ta":{"a":"அ"}}`)); err == nil {
		t.Fatal("expected error for catalog without en")
	}
}
