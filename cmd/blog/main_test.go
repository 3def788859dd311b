package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeContent(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"en/first.md":  "---\ntitle: First Post\nexcerpt: One.\n---\n\nFirst **body**.\n",
		"en/second.md": "---\ntitle: Second Post\nexcerpt: Two.\n---\n\nSecond body.\n",
		"zh/first.md":  "---\ntitle: 第一篇\nexcerpt: 用Go写。\nslug: first-post\n---\n\n正文。\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestRunSlugs(t *testing.T) {
	root := writeContent(t)
	out := captureStdout(t)

	if err := run([]string{"slugs", "--content-dir", root}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "first-post\nsecond-post\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunShowHTML(t *testing.T) {
	root := writeContent(t)
	out := captureStdout(t)

	if err := run([]string{"show", "--content-dir", root, "--slug", "first-post", "--html"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "<strong>body</strong>") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunShowJSONForLocale(t *testing.T) {
	root := writeContent(t)
	out := captureStdout(t)

	if err := run([]string{"show", "--content-dir", root, "--slug", "first-post", "--locale", "zh"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `"excerpt": "用 Go 写。"`) {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunShowReportsKind(t *testing.T) {
	root := writeContent(t)
	captureStdout(t)

	err := run([]string{"show", "--content-dir", root, "--slug", "../etc"})
	if err == nil || !strings.HasPrefix(err.Error(), "invalid_slug") {
		t.Fatalf("expected invalid_slug error, got %v", err)
	}
}

func TestRunShowRequiresSlug(t *testing.T) {
	if err := run([]string{"show"}); err == nil {
		t.Fatal("expected error without --slug")
	}
}

func TestRunList(t *testing.T) {
	root := writeContent(t)
	out := captureStdout(t)

	if err := run([]string{"list", "--content-dir", root}); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two posts, got %q", out.String())
	}
}

func TestRunCheck(t *testing.T) {
	root := writeContent(t)
	out := captureStdout(t)

	if err := run([]string{"check", "--content-dir", root}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "ok" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunExport(t *testing.T) {
	root := writeContent(t)
	dest := t.TempDir()
	out := captureStdout(t)

	if err := run([]string{"export", "--content-dir", root, "--out", dest, "--only", "zh"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "zh", "first-post.json")); err != nil {
		t.Fatalf("expected exported post: %v", err)
	}
	if !strings.HasPrefix(out.String(), "zh\t1 posts") {
		t.Fatalf("unexpected summary %q", out.String())
	}
}

func TestRunExportRequiresOut(t *testing.T) {
	root := writeContent(t)
	captureStdout(t)

	if err := run([]string{"export", "--content-dir", root}); err == nil {
		t.Fatal("expected validation error without --out")
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run([]string{"unknown"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRun_NoArgs(t *testing.T) {
	if err := run([]string{}); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestRunSlugsFromConfigFile(t *testing.T) {
	root := writeContent(t)
	config := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(config, []byte("content:\n  dir: "+root+"\ndefault_locale: zh\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out := captureStdout(t)

	if err := run([]string{"slugs", "--config", config}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "first-post" {
		t.Fatalf("unexpected slugs %q", out.String())
	}
}
