// Package mocks generates the static mock API: example response fixtures
// grouped by feature, a README describing them and an npm manifest for
// serving the tree.
//
// Every run produces the same files with the same bytes.
package mocks

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"text/template"

	"github.com/unihub/apispec/internal/document"
	"github.com/unihub/apispec/internal/emit"
	"github.com/unihub/apispec/internal/templates"
	embeddedtmpl "github.com/unihub/apispec/templates"
)

//go:embed fixtures
var fixtures embed.FS

const readmeTemplate = "mocks/README.md.tmpl"

// Options configures a Generator.
type Options struct {
	// TemplatesDir optionally overrides embedded templates
	TemplatesDir string
	// LastUpdated is stamped into the README when set (YYYY-MM-DD)
	LastUpdated string
	Logger      *slog.Logger
}

// Generator renders the mock tree.
type Generator struct {
	engine templates.Engine
	opts   Options
	logger *slog.Logger
}

func New(opts Options) (*Generator, error) {
	engine, err := templates.NewEngine(embeddedtmpl.FS, opts.TemplatesDir, templateFuncs())
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Generator{engine: engine, opts: opts, logger: logger}, nil
}

// Generate returns every file of the mock tree, relative to its root:
// fixtures in catalog order, then README.md and package.json.
func (g *Generator) Generate() ([]emit.File, error) {
	files := make([]emit.File, 0, len(Catalog)+2)

	for _, dir := range Directories {
		g.logger.Debug("creating mocks", "dir", dir.Name)
		for _, f := range Catalog {
			if path.Dir(f.Path) != dir.Name {
				continue
			}
			file, err := fixtureFile(f)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}
	for _, f := range Catalog {
		if path.Dir(f.Path) != "." {
			continue
		}
		file, err := fixtureFile(f)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	readme, err := g.readme()
	if err != nil {
		return nil, err
	}
	files = append(files, emit.File{Name: "README.md", Content: []byte(readme)})

	manifest, err := document.EncodeJSON(packageManifest())
	if err != nil {
		return nil, fmt.Errorf("rendering package.json: %w", err)
	}
	files = append(files, emit.File{Name: "package.json", Content: manifest})

	return files, nil
}

func fixtureFile(f Fixture) (emit.File, error) {
	data, err := fs.ReadFile(fixtures, path.Join("fixtures", f.Path))
	if err != nil {
		return emit.File{}, fmt.Errorf("reading fixture %s: %w", f.Path, err)
	}
	return emit.File{Name: f.Path, Content: data}, nil
}

type readmeDirectory struct {
	Directory
	Files []string
}

type readmeData struct {
	Directories []readmeDirectory
	RootFiles   []string
	Endpoints   []Fixture
	Errors      []Fixture
	LastUpdated string
}

func (g *Generator) readme() (string, error) {
	data := readmeData{LastUpdated: g.opts.LastUpdated}

	for _, dir := range Directories {
		rd := readmeDirectory{Directory: dir}
		for _, f := range Catalog {
			if path.Dir(f.Path) == dir.Name {
				rd.Files = append(rd.Files, path.Base(f.Path))
			}
		}
		data.Directories = append(data.Directories, rd)
	}

	for _, f := range Catalog {
		if path.Dir(f.Path) == "." {
			data.RootFiles = append(data.RootFiles, f.Path)
		}
		if f.Endpoint != "" {
			data.Endpoints = append(data.Endpoints, f)
		} else {
			data.Errors = append(data.Errors, f)
		}
	}

	out, err := g.engine.Execute(readmeTemplate, data)
	if err != nil {
		return "", fmt.Errorf("rendering README: %w", err)
	}
	return out, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"isLast": func(i, n int) bool { return i == n-1 },
		"dir":    func(name string) string { return fmt.Sprintf("%-23s", name+"/") },
		"code":   func(s string) string { return "`" + s + "`" },
	}
}

// packageManifest is the npm manifest written next to the fixtures so the
// tree can be served with `npm run serve`.
func packageManifest() *document.Mapping {
	type p = document.Pair
	str := document.Str

	return document.Map(
		p{Key: "name", Value: str("uni-hub-mock-api")},
		p{Key: "version", Value: str("1.0.0")},
		p{Key: "description", Value: str("Mock API for Uni Hub Platform")},
		p{Key: "scripts", Value: document.Map(
			p{Key: "create-mocks", Value: str("apispec mocks --output-dir .")},
			p{Key: "clean", Value: str("rm -rf auth users posts messages qa events marketplace resources notifications groups error-*.json")},
			p{Key: "regenerate", Value: str("npm run clean && npm run create-mocks")},
			p{Key: "serve", Value: str("npx serve . -p 8080")},
		)},
		p{Key: "keywords", Value: document.Seq(
			str("mock-api"), str("swagger"), str("openapi"), str("university"), str("student-platform"),
		)},
		p{Key: "author", Value: str("Uni Hub Team")},
		p{Key: "license", Value: str("MIT")},
		p{Key: "dependencies", Value: document.NewMapping()},
		p{Key: "devDependencies", Value: document.NewMapping()},
	)
}
