// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var ErrInvalidReference = errors.New("invalid document reference")

// maxNameLen keeps stored names well under common filesystem limits
const maxNameLen = 200

// Dir stores identity documents as files in a single directory.
type Dir struct {
	root string
}

// NewDir returns a Dir rooted at root, creating the directory if needed.
func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, errors.New("document directory is required")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &Dir{root: root}, nil
}

// Save writes the contents of r under a sanitized version of filename and
// returns the stored name. Existing files are never overwritten: a name
// that is already taken gets a random prefix.
func (d *Dir) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := SanitizeFilename(filename)
	if name == "" {
		name = uuid.NewString()
	}

	f, err := d.create(name)
	if errors.Is(err, fs.ErrExist) {
		name = uuid.NewString()[:8] + "_" + name
		f, err = d.create(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath.Join(d.root, name))
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	slog.Info("document stored", "document", name, "size", humanize.Bytes(uint64(n)))
	return name, nil
}

// Remove deletes a document previously returned by Save. Missing documents
// are not an error.
func (d *Dir) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ref == "" || SanitizeFilename(ref) != ref {
		return ErrInvalidReference
	}

	err := os.Remove(filepath.Join(d.root, ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}

func (d *Dir) create(name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(d.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
}

// Reserved device names on Windows; a file called CON.txt cannot be opened there.
var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeFilename reduces a client-supplied filename to a flat ASCII name
// made of letters, digits, '_', '.' and '-'. The result never contains a
// path separator and never starts with '.' or '_'. It may be empty.
func SanitizeFilename(filename string) string {
	// Decompose accented letters so the base letter survives the ASCII filter
	filename = norm.NFKD.String(filename)

	var b strings.Builder
	for _, r := range filename {
		if r >= utf8.RuneSelf {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}

	filename = strings.Join(strings.Fields(b.String()), "_")

	b.Reset()
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		}
	}

	filename = strings.Trim(b.String(), "._")
	if len(filename) > maxNameLen {
		filename = strings.Trim(filename[len(filename)-maxNameLen:], "._")
	}

	if filename != "" {
		base, _, _ := strings.Cut(filename, ".")
		if windowsDeviceNames[strings.ToUpper(base)] {
			filename = "_" + filename
		}
	}

	return filename
}
