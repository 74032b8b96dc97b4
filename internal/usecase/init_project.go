package usecase

import (
	"bytes"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/3-lines-studio/viewpack/internal/templates"
)

type InitInput struct {
	ProjectDir string
	Template   string
	Package    string
}

type InitOutput struct {
	Success bool
	Error   error
	Created []string
}

type InitService struct {
	fs        FileSystem
	templates TemplateSource
	cli       CLIOutput
}

func NewInitService(fs FileSystem, source TemplateSource, cli CLIOutput) *InitService {
	return &InitService{
		fs:        fs,
		templates: source,
		cli:       cli,
	}
}

// InitProject writes a starter bundle.yml and views tree into an empty or
// missing directory.
func (s *InitService) InitProject(input InitInput) InitOutput {
	s.cli.PrintHeader("viewpack init")

	if s.fs.FileExists(input.ProjectDir) {
		entries, err := s.fs.ReadDir(input.ProjectDir)
		if err != nil {
			return InitOutput{
				Success: false,
				Error:   fmt.Errorf("failed to read directory: %w", err),
			}
		}
		if len(entries) > 0 {
			return InitOutput{
				Success: false,
				Error:   fmt.Errorf("directory '%s' already exists and is not empty", input.ProjectDir),
			}
		}
	}

	name := input.Template
	if name == "" {
		name = "minimal"
	}
	templateFS, err := s.templates.GetTemplate(name)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidTemplate) {
			err = fmt.Errorf("invalid template '%s': %w", name, err)
		}
		return InitOutput{Success: false, Error: err}
	}

	pkg := input.Package
	if pkg == "" {
		pkg = packageName(input.ProjectDir)
	}
	data := starterData{
		Package:   pkg,
		ViewsRoot: templates.DefaultViewsRoot,
	}

	var created []string
	err = iofs.WalkDir(templateFS, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			targetDir := filepath.Join(input.ProjectDir, path)
			if err := s.fs.MkdirAll(targetDir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
			}
			return nil
		}

		content, err := iofs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, content, isTemplate, err := renderStarterFile(path, content, data)
		if err != nil {
			return err
		}
		targetPath = filepath.Join(input.ProjectDir, filepath.FromSlash(targetPath))

		if err := s.fs.WriteFile(targetPath, content, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			s.cli.PrintFile(targetPath + " (generated)")
		} else {
			s.cli.PrintFile(targetPath)
		}
		created = append(created, targetPath)
		return nil
	})
	if err != nil {
		return InitOutput{Success: false, Error: err}
	}

	s.cli.PrintSuccess("Created %d files", len(created))
	s.cli.PrintDone("Run viewpack build --app-root " + input.ProjectDir + " --package " + pkg)
	return InitOutput{
		Success: true,
		Created: created,
	}
}

type starterData struct {
	Package   string
	ViewsRoot string
}

// renderStarterFile executes name as a text/template when it ends in .tmpl
// and strips that suffix. Other files are copied as they are.
func renderStarterFile(name string, content []byte, data starterData) (string, []byte, bool, error) {
	target, ok := strings.CutSuffix(name, ".tmpl")
	if !ok {
		return name, content, false, nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", nil, false, fmt.Errorf("failed to parse template file %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", nil, false, fmt.Errorf("failed to render template file %s: %w", name, err)
	}
	return target, buf.Bytes(), true, nil
}

// packageName names the bundle package after the project directory.
func packageName(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "app"
	}
	return base
}
