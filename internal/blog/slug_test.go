package blog

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":               "hello-world",
		"  Hello  ":                 "hello",
		"Sunshine & Shadows — 2025": "sunshine-shadows-2025",
		"":                          "",
		"---":                       "",
		"Go 1.24: What's New?":      "go-1-24-what-s-new",
		"准备APS材料":                   "aps",
		"already-a-slug":            "already-a-slug",
		"a.b/c":                     "a-b-c",
		"Straße":                    "stra-e",
		"Café au lait":              "caf-au-lait",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"  --Mixed__Case 42--  ",
		"Sunshine & Shadows — 2025",
		"Ünïcödé Títle",
		"",
		"a/b/../c",
	}
	for _, input := range inputs {
		once := Slugify(input)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestValidRequestSlug(t *testing.T) {
	valid := []string{"hello-world", "", "post-2025"}
	invalid := []string{"../secret", "foo/bar", "foo.md", `foo\bar`, ".", ".."}

	for _, slug := range valid {
		if !validRequestSlug(slug) {
			t.Fatalf("expected %q to be accepted", slug)
		}
	}
	for _, slug := range invalid {
		if validRequestSlug(slug) {
			t.Fatalf("expected %q to be rejected", slug)
		}
	}
}
