// Package bundler assembles a single OpenAPI document from a shared
// definitions file and an ordered list of module files.
//
// Assembly is a fold over the sources: the shared file contributes schemas
// first, then each present module contributes its paths and schemas in
// declaration order. On a key collision the later source replaces the
// earlier value wholesale. Finally every reference into the shared file is
// rewritten to an internal component reference.
package bundler

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/unihub/apispec/internal/document"
	"github.com/unihub/apispec/internal/reference"
)

// PathPrefix is stripped from module path keys; servers already carry it.
const PathPrefix = "/api/v1"

// Options configures an Assembler. Relative paths resolve against BaseDir.
type Options struct {
	BaseDir    string
	Shared     string
	ModulesDir string
	Modules    []string
	Logger     *slog.Logger
}

// Assembler builds the bundled document.
type Assembler struct {
	baseDir    string
	shared     string
	modulesDir string
	modules    []string
	rewriter   *reference.Rewriter
	logger     *slog.Logger
}

// Result is the outcome of one assembly.
type Result struct {
	Document *document.Mapping
	// Modules lists merged modules in merge order
	Modules []string
	// Skipped lists declared modules whose files were absent
	Skipped []string
	// Warnings lists non-fatal findings, such as shared schema overrides
	Warnings []string
}

// PathCount returns the number of paths in the bundle.
func (r *Result) PathCount() int {
	paths, _ := r.Document.Mapping("paths")
	if paths == nil {
		return 0
	}
	return paths.Len()
}

// SchemaCount returns the number of component schemas in the bundle.
func (r *Result) SchemaCount() int {
	components, _ := r.Document.Mapping("components")
	if components == nil {
		return 0
	}
	schemas, _ := components.Mapping("schemas")
	if schemas == nil {
		return 0
	}
	return schemas.Len()
}

// New creates an Assembler. Empty Shared and ModulesDir fall back to
// "shared.yaml" and "modules"; a nil Modules slice uses DefaultModules.
func New(opts Options) *Assembler {
	a := &Assembler{
		baseDir:    opts.BaseDir,
		shared:     opts.Shared,
		modulesDir: opts.ModulesDir,
		modules:    opts.Modules,
		logger:     opts.Logger,
	}
	if a.baseDir == "" {
		a.baseDir = "."
	}
	if a.shared == "" {
		a.shared = "shared.yaml"
	}
	if a.modulesDir == "" {
		a.modulesDir = "modules"
	}
	if a.modules == nil {
		a.modules = DefaultModules
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a.rewriter = reference.NewRewriter(a.shared)
	return a
}

func (a *Assembler) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.baseDir, path)
}

// SharedPath returns the resolved path of the shared source.
func (a *Assembler) SharedPath() string {
	return a.resolve(a.shared)
}

// ModulePath returns the resolved path of a module.
func (a *Assembler) ModulePath(module string) string {
	return filepath.Join(a.resolve(a.modulesDir), moduleFile(module))
}

// Assemble loads every source and returns the merged, reference-rewritten
// document. A missing or malformed shared file and any malformed module
// fail with a *specerrors.LoadError; missing modules are skipped.
func (a *Assembler) Assemble() (*Result, error) {
	a.logger.Info("reading shared components", "path", a.SharedPath())
	shared, err := loadSource(a.SharedPath(), "")
	if err != nil {
		return nil, err
	}

	sources := []*Source{shared}
	result := &Result{}
	for _, m := range a.modules {
		name := moduleName(m)
		path := a.ModulePath(m)

		ok, err := exists(path, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			a.logger.Info("skipping module, file not found", "module", name, "path", path)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		a.logger.Info("processing module", "module", name, "path", path)
		src, err := loadSource(path, name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
		result.Modules = append(result.Modules, name)
	}

	merged, err := fold(sources, newAccumulator(BaseDocument()), mergeSource)
	if err != nil {
		return nil, err
	}
	for _, w := range merged.warnings {
		a.logger.Warn(w)
	}

	result.Document = a.rewriter.Rewrite(merged.doc).(*document.Mapping)
	result.Warnings = merged.warnings
	return result, nil
}

// NormalizePath strips PathPrefix from the start of a path key.
func NormalizePath(key string) string {
	return strings.TrimPrefix(key, PathPrefix)
}

// accumulator is the state threaded through the merge fold.
type accumulator struct {
	doc *document.Mapping
	// origin records which source last supplied each schema
	origin   map[string]*Source
	warnings []string
}

func newAccumulator(base *document.Mapping) accumulator {
	return accumulator{doc: base, origin: make(map[string]*Source)}
}

func (acc accumulator) clone() accumulator {
	next := accumulator{
		doc:      acc.doc.Clone().(*document.Mapping),
		origin:   make(map[string]*Source, len(acc.origin)),
		warnings: append([]string(nil), acc.warnings...),
	}
	for k, v := range acc.origin {
		next.origin[k] = v
	}
	return next
}

// fold threads acc through fn for each source in order.
func fold[S, A any](items []S, acc A, fn func(A, S) (A, error)) (A, error) {
	for _, item := range items {
		next, err := fn(acc, item)
		if err != nil {
			return acc, err
		}
		acc = next
	}
	return acc, nil
}

// mergeSource returns acc with src applied. The shared source contributes
// schemas only; modules contribute normalized paths and schemas. Values are
// replaced wholesale on collision, never merged field by field.
func mergeSource(acc accumulator, src *Source) (accumulator, error) {
	next := acc.clone()

	if !src.Shared {
		paths, err := src.paths()
		if err != nil {
			return acc, err
		}
		if paths != nil {
			target := ensureMapping(next.doc, "paths")
			for key, item := range paths.All() {
				target.Set(NormalizePath(key), item.Clone())
			}
		}
	}

	schemas, err := src.schemas()
	if err != nil {
		return acc, err
	}
	if schemas != nil {
		target := ensureMapping(ensureMapping(next.doc, "components"), "schemas")
		for name, schema := range schemas.All() {
			if prev, ok := next.origin[name]; ok && prev.Shared && !src.Shared {
				next.warnings = append(next.warnings,
					fmt.Sprintf("schema %q from %s is overridden by module %s", name, prev.Name, src.Name))
			}
			target.Set(name, schema.Clone())
			next.origin[name] = src
		}
	}

	return next, nil
}

// ensureMapping returns parent[key], replacing a missing or non-mapping
// value with an empty mapping.
func ensureMapping(parent *document.Mapping, key string) *document.Mapping {
	if m, ok := parent.Mapping(key); ok {
		return m
	}
	m := document.NewMapping()
	parent.Set(key, m)
	return m
}
