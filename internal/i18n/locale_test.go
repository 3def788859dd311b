package i18n

import (
	"errors"
	"testing"
)

func testConfig() Config {
	return FromModuleConfig("en", []string{"en", "zh"}, "blog")
}

func TestFromModuleConfigIncludesDefault(t *testing.T) {
	cfg := FromModuleConfig("en", []string{"zh", " EN "}, "")

	if len(cfg.Locales) != 2 || cfg.Locales[0] != "en" || cfg.Locales[1] != "zh" {
		t.Fatalf("unexpected locales %v", cfg.Locales)
	}
	if cfg.BasePath != "/blog" {
		t.Fatalf("expected default base path, got %q", cfg.BasePath)
	}
}

func TestResolve(t *testing.T) {
	cfg := testConfig()

	cases := []struct {
		requested string
		code      string
		isDefault bool
		cjk       bool
	}{
		{requested: "", code: "en", isDefault: true},
		{requested: "en", code: "en", isDefault: true},
		{requested: "EN-us", code: "en", isDefault: true},
		{requested: "zh", code: "zh", cjk: true},
		{requested: "zh-Hans", code: "zh", cjk: true},
		{requested: "zh-TW", code: "zh", cjk: true},
		{requested: "fr", code: "fr"},
		{requested: "ja", code: "ja", cjk: true},
	}

	for _, tc := range cases {
		locale, err := cfg.Resolve(tc.requested)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.requested, err)
		}
		if locale.Code != tc.code {
			t.Fatalf("Resolve(%q): expected code %q, got %q", tc.requested, tc.code, locale.Code)
		}
		if locale.Default != tc.isDefault {
			t.Fatalf("Resolve(%q): expected default=%v", tc.requested, tc.isDefault)
		}
		if locale.CJK() != tc.cjk {
			t.Fatalf("Resolve(%q): expected cjk=%v", tc.requested, tc.cjk)
		}
	}
}

func TestResolveRejectsPathLikeValues(t *testing.T) {
	cfg := testConfig()

	for _, requested := range []string{"../en", "en/..", "zh\\x", "."} {
		if _, err := cfg.Resolve(requested); !errors.Is(err, ErrInvalidLocale) {
			t.Fatalf("Resolve(%q): expected ErrInvalidLocale, got %v", requested, err)
		}
	}
}

func TestIndexPathAndAlternates(t *testing.T) {
	cfg := testConfig()

	if got := cfg.IndexPath("en", ""); got != "/blog" {
		t.Fatalf("expected /blog, got %q", got)
	}
	if got := cfg.IndexPath("zh", "hello"); got != "/zh/blog/hello" {
		t.Fatalf("expected /zh/blog/hello, got %q", got)
	}

	alternates := cfg.Alternates("hello")
	if alternates["en"] != "/blog/hello" || alternates["zh"] != "/zh/blog/hello" {
		t.Fatalf("unexpected alternates %v", alternates)
	}
}
