// Package importer turns text files and clipboard contents into script
// drafts. Input is decoded from UTF-8 or BOM-marked UTF-16, normalized to
// NFC, and given Unix line endings.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// ErrEmptyInput is returned when the decoded text is blank.
var ErrEmptyInput = errors.New("input contains no text")

// readClipboard is swapped in tests.
var readClipboard = clipboard.ReadAll

// Decode converts raw bytes into normalized text. A UTF-8 or UTF-16 byte
// order mark selects the encoding and is stripped; unmarked input is read
// as UTF-8.
func Decode(raw []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
	return string(norm.NFC.Bytes(out)), nil
}

// FromText builds a script draft named name from raw bytes.
func FromText(name string, raw []byte) (types.Draft, error) {
	text, err := Decode(raw)
	if err != nil {
		return types.Draft{}, err
	}
	if strings.TrimSpace(text) == "" {
		return types.Draft{}, ErrEmptyInput
	}
	return types.Draft{Name: strings.TrimSpace(name), Content: text}, nil
}

// ReadFile imports one file. The draft name is the file's base name without
// its extension.
func ReadFile(path string) (types.Draft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.Draft{}, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := FromText(NameFromPath(path), raw)
	if err != nil {
		return types.Draft{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// FromClipboard imports the system clipboard text under name.
func FromClipboard(name string) (types.Draft, error) {
	text, err := readClipboard()
	if err != nil {
		return types.Draft{}, fmt.Errorf("read clipboard: %w", err)
	}
	return FromText(name, []byte(text))
}

// NameFromPath derives a display name from a file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
