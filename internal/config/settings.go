package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix        = "VIEWPACK"
	DefaultNamespace = "this.N.views"
	DefaultBundle    = "bundle.yml"
	DefaultDebounce  = 300 * time.Millisecond
)

// Settings are the CLI inputs of a build, after flags, environment and
// defaults have been merged.
type Settings struct {
	ConfigFile string
	Package    string
	AppRoot    string
	OutDir     string
	Namespace  string
	LogLevel   string
	Debounce   time.Duration
	Manifest   bool
}

// NewViper returns a viper instance with defaults and VIEWPACK_* environment
// bindings. Flags are bound separately by the command that owns them.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("config", DefaultBundle)
	v.SetDefault("package", DefaultPackage)
	v.SetDefault("app-root", ".")
	v.SetDefault("out", "")
	v.SetDefault("namespace", DefaultNamespace)
	v.SetDefault("log-level", "info")
	v.SetDefault("debounce", DefaultDebounce)
	v.SetDefault("manifest", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	return v.BindPFlags(flags)
}

// ReadSettings resolves paths to absolute form. A relative config file is
// looked up under the app root; an empty out dir defaults to the app root.
func ReadSettings(v *viper.Viper) (Settings, error) {
	appRoot, err := filepath.Abs(v.GetString("app-root"))
	if err != nil {
		return Settings{}, fmt.Errorf("failed to resolve app root: %w", err)
	}

	configFile := v.GetString("config")
	if !filepath.IsAbs(configFile) {
		configFile = filepath.Join(appRoot, configFile)
	}

	outDir := v.GetString("out")
	if outDir == "" {
		outDir = appRoot
	} else if !filepath.IsAbs(outDir) {
		outDir, err = filepath.Abs(outDir)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to resolve out dir: %w", err)
		}
	}

	namespace := v.GetString("namespace")
	if err := ValidateNamespace(namespace); err != nil {
		return Settings{}, err
	}

	debounce := v.GetDuration("debounce")
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return Settings{
		ConfigFile: configFile,
		Package:    v.GetString("package"),
		AppRoot:    appRoot,
		OutDir:     outDir,
		Namespace:  namespace,
		LogLevel:   v.GetString("log-level"),
		Debounce:   debounce,
		Manifest:   v.GetBool("manifest"),
	}, nil
}

// ValidateNamespace checks that namespace is a dotted JavaScript property
// path such as "this.N.views".
func ValidateNamespace(namespace string) error {
	if namespace == "" {
		return fmt.Errorf("namespace cannot be empty")
	}
	for _, part := range strings.Split(namespace, ".") {
		if !isIdentifier(part) {
			return fmt.Errorf("invalid namespace %q: %q is not an identifier", namespace, part)
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
