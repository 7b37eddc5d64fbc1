package resolve

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"backdrop/internal/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestResolve_DarkDesktop(t *testing.T) {
	out, err := runCommand(t, "--path", "/posts/", "--mode", "dark", "--width", "1280")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.Contains(out, "desktop.webp") {
		t.Errorf("output = %q, want the desktop entry", out)
	}
}

func TestResolve_MobileWidth(t *testing.T) {
	out, err := runCommand(t, "--path", "/posts/", "--mode", "dark", "--width", "390")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.Contains(out, "mobile-dark.webp") {
		t.Errorf("output = %q, want the dark mobile entry", out)
	}
}

func TestResolve_ExcludedPathFallsBack(t *testing.T) {
	out, err := runCommand(t, "--path", "/about/", "--mode", "dark", "--width", "1280")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.Contains(out, "plain.webp") {
		t.Errorf("output = %q, want the fallback", out)
	}
}

func TestResolve_OverrideWins(t *testing.T) {
	out, err := runCommand(t, "--path", "/posts/", "--mode", "dark", "--width", "1280",
		"--override", "/img/special.webp")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.Contains(out, "/img/special.webp") {
		t.Errorf("output = %q, want the override", out)
	}
}

func TestResolve_JSONOutput(t *testing.T) {
	out, err := runCommand(t, "--path", "/about/", "--mode", "dark", "--width", "390",
		"--exclude-start", "-o", "json")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	var got result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out, err)
	}
	if got.Mode != "none" {
		t.Errorf("mode = %q, want none (exact-match startup exclusion)", got.Mode)
	}
	if got.Class != "mobile" || !got.Excluded {
		t.Errorf("unexpected result: %+v", got)
	}
	if !strings.Contains(got.Ref, "mobile-dark") {
		t.Errorf("ref = %q, want the dark mobile entry on excluded mobile", got.Ref)
	}
}

func TestResolve_CSSOutput(t *testing.T) {
	out, err := runCommand(t, "--path", "/posts/", "--mode", "light", "--width", "1280", "-o", "css")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.HasPrefix(out, "body { background-image: url(") {
		t.Errorf("output = %q, want a CSS declaration", out)
	}
}

func TestResolve_RejectsBadMode(t *testing.T) {
	_, err := runCommand(t, "--mode", "sepia", "--width", "800")
	if err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestResolve_RejectsBadOutput(t *testing.T) {
	_, err := runCommand(t, "--width", "800", "--mode", "dark", "-o", "yaml")
	if err == nil {
		t.Fatal("expected error for unsupported output format")
	}
}
