package templates

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestGetTemplate(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		wantErr   bool
		errTarget error
	}{
		{
			name:     "minimal template",
			template: "minimal",
		},
		{
			name:     "static template",
			template: "static",
		},
		{
			name:      "invalid template",
			template:  "invalid",
			wantErr:   true,
			errTarget: ErrInvalidTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, err := GetTemplate(tt.template)
			if tt.wantErr {
				if !errors.Is(err, tt.errTarget) {
					t.Errorf("GetTemplate(%q) error = %v, want error wrapping %v", tt.template, err, tt.errTarget)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetTemplate(%q) error = %v", tt.template, err)
			}
			if fsys == nil {
				t.Error("GetTemplate() returned nil fs")
			}
		})
	}
}

func TestTemplatesShipBundleAndViews(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fsys, err := GetTemplate(name)
			if err != nil {
				t.Fatalf("GetTemplate(%q) error = %v", name, err)
			}

			bundle, err := fs.ReadFile(fsys, "bundle.yml.tmpl")
			if err != nil {
				t.Fatalf("bundle.yml.tmpl missing: %v", err)
			}
			if !strings.Contains(string(bundle), "{{.Package}}") {
				t.Errorf("bundle.yml.tmpl does not reference the package name")
			}

			var views int
			err = fs.WalkDir(fsys, DefaultViewsRoot, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					views++
				}
				return nil
			})
			if err != nil {
				t.Fatalf("WalkDir() error = %v", err)
			}
			if views == 0 {
				t.Errorf("template %q has no views", name)
			}
		})
	}
}
