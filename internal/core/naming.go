package core

import (
	"path/filepath"
	"strings"
)

// NamespaceKey turns a view's relative path into its lookup key.
// The extension is stripped, separators become dots and repeated segments
// are dropped, so "widget/widget.jade" and "widget.jade" both map to
// "widget".
func NamespaceKey(relativePath, prefix, extension string) string {
	name := strings.ReplaceAll(relativePath, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if extension != "" {
		name = trimSuffixFold(name, "."+strings.TrimPrefix(extension, "."))
	} else {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	api := strings.ReplaceAll(name, "/", ".")
	if prefix != "" {
		api = prefix + "." + api
	}

	return dedupeSegments(api)
}

func trimSuffixFold(s, suffix string) string {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s[:len(s)-len(suffix)]
	}
	return s
}

func dedupeSegments(api string) string {
	segments := strings.Split(api, ".")
	seen := make(map[string]struct{}, len(segments))
	result := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, ok := seen[segment]; ok {
			continue
		}
		seen[segment] = struct{}{}
		result = append(result, segment)
	}
	return strings.Join(result, ".")
}

// KeyForDescriptor is NamespaceKey without a prefix.
func KeyForDescriptor(p PathDescriptor) string {
	return NamespaceKey(p.RelativePath, "", p.Extension)
}
