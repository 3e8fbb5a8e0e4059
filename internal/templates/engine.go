// Package templates renders text templates from layered file trees.
package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

type Engine interface {
	Execute(name string, data any) (string, error)
}

// layer is one template source. Templates are named by their slash
// separated path inside the layer.
type layer struct {
	origin string
	fsys   fs.FS
}

// LayeredEngine renders *.tmpl files. A template in the custom directory
// replaces the embedded template with the same relative name; the others
// stay available. A configured custom directory must exist.
type LayeredEngine struct {
	templates *template.Template
}

func NewEngine(embedded fs.FS, customDir string, funcs template.FuncMap) (*LayeredEngine, error) {
	layers := []layer{{origin: "embedded", fsys: embedded}}
	if customDir != "" {
		layers = append(layers, layer{origin: "custom", fsys: os.DirFS(customDir)})
	}

	root := template.New("").Funcs(funcs)
	for _, l := range layers {
		if err := l.parseInto(root); err != nil {
			return nil, fmt.Errorf("loading %s templates: %w", l.origin, err)
		}
	}

	return &LayeredEngine{templates: root}, nil
}

func (l layer) parseInto(root *template.Template) error {
	return fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := fs.ReadFile(l.fsys, path)
		if err != nil {
			return fmt.Errorf("reading %s template %s: %w", l.origin, path, err)
		}
		if _, err := root.New(path).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing %s template %s: %w", l.origin, path, err)
		}
		return nil
	})
}

func (e *LayeredEngine) Execute(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}
