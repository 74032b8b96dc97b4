// Package assets writes the client side of a views build: the views.js
// bundle and its manifest.
package assets

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/3-lines-studio/viewpack/internal/adapters/fs"
	"github.com/3-lines-studio/viewpack/internal/core"
)

const (
	BundleFile   = "views.js"
	ManifestFile = "views.manifest.json"
	header       = "/* generated by viewpack, do not edit */\n"
)

// globalRoots are namespace heads that always exist in a browser.
var globalRoots = []string{"this", "window", "self", "globalThis"}

// RenderClientTree serializes client sources as assignments under namespace.
// Keys are emitted in sorted order so identical trees give identical bytes.
func RenderClientTree(tree map[string]string, namespace string) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)

	for _, line := range guardLines(namespace) {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		fmt.Fprintf(&buf, "%s[%s] = %s;\n", namespace, core.QuoteJS(key), tree[key])
	}

	return buf.Bytes()
}

// WriteClientTree renders tree and writes it to path, creating the parent
// directory when needed.
func WriteClientTree(fsys fs.FileSystem, path string, tree map[string]string, namespace string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}
	if err := fsys.WriteFile(path, RenderClientTree(tree, namespace), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func guardLines(namespace string) []string {
	parts := strings.Split(namespace, ".")
	lines := make([]string, 0, len(parts))

	start := 1
	if !slices.Contains(globalRoots, parts[0]) {
		lines = append(lines, fmt.Sprintf("var %s = %s || {};", parts[0], parts[0]))
	}

	for i := start; i < len(parts); i++ {
		prefix := strings.Join(parts[:i+1], ".")
		lines = append(lines, fmt.Sprintf("%s = %s || {};", prefix, prefix))
	}
	return lines
}
