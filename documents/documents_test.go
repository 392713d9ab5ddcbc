// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package documents

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aadhaar.pdf", "aadhaar.pdf"},
		{"My Card.png", "My_Card.png"},
		{"../../etc/passwd", "etc_passwd"},
		{`..\..\windows\system32.dll`, "windows_system32.dll"},
		{"/absolute/path.jpg", "absolute_path.jpg"},
		{"résumé.pdf", "resume.pdf"},
		{"i contain cool \xfcml\xe4uts.txt", "i_contain_cool_mluts.txt"},
		{".hidden", "hidden"},
		{"__init__.py", "init__.py"},
		{"con.txt", "_con.txt"},
		{"LPT1", "_LPT1"},
		{"证件.jpg", "jpg"},
		{"...", ""},
		{"", ""},
		{"a;b|c$d.txt", "abcd.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SanitizeFilename(tt.in)
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.ContainsAny(got, `/\`) {
				t.Errorf("SanitizeFilename(%q) = %q contains a path separator", tt.in, got)
			}
		})
	}
}

func TestSanitizeFilename_LongName(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 500) + ".pdf")
	if len(got) > maxNameLen {
		t.Errorf("len = %d, want <= %d", len(got), maxNameLen)
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Errorf("extension lost: %q", got)
	}
}

func TestDirSave(t *testing.T) {
	root := t.TempDir()
	dir, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	ref, err := dir.Save(ctx, "../card.pdf", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ref != "card.pdf" {
		t.Errorf("Save() ref = %q, want card.pdf", ref)
	}

	data, err := os.ReadFile(filepath.Join(root, ref))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("stored content = %q", data)
	}

	// Nothing escapes the root
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "card.pdf")); err == nil {
		t.Error("document written outside the root directory")
	}

	// Same name again must not clobber the first upload
	ref2, err := dir.Save(ctx, "card.pdf", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if ref2 == ref {
		t.Fatal("second Save() reused the same reference")
	}
	if !strings.HasSuffix(ref2, "_card.pdf") {
		t.Errorf("second ref = %q, want random prefix + _card.pdf", ref2)
	}
	data, _ = os.ReadFile(filepath.Join(root, ref))
	if string(data) != "first" {
		t.Error("first document was overwritten")
	}

	// Unusable name falls back to a generated one
	ref3, err := dir.Save(ctx, "证件", strings.NewReader("third"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ref3 == "" || SanitizeFilename(ref3) != ref3 {
		t.Errorf("generated ref = %q is not a clean name", ref3)
	}
}

func TestDirRemove(t *testing.T) {
	root := t.TempDir()
	dir, err := NewDir(root)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	ref, err := dir.Save(ctx, "id.png", strings.NewReader("png"))
	if err != nil {
		t.Fatal(err)
	}

	if err := dir.Remove(ctx, ref); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ref)); !os.IsNotExist(err) {
		t.Error("document still present after Remove()")
	}

	// Already gone is fine
	if err := dir.Remove(ctx, ref); err != nil {
		t.Errorf("Remove() of missing document error = %v", err)
	}

	for _, bad := range []string{"", "../x", "a/b", ".env"} {
		if err := dir.Remove(ctx, bad); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Remove(%q) error = %v, want ErrInvalidReference", bad, err)
		}
	}
}

func TestDirSaveCanceled(t *testing.T) {
	dir, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := dir.Save(ctx, "x.pdf", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}
