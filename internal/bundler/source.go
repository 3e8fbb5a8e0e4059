package bundler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unihub/apispec/internal/document"
	"github.com/unihub/apispec/internal/specerrors"
)

// DefaultModules is the declaration order modules are merged in. Later
// modules win on path and schema collisions.
var DefaultModules = []string{
	"auth",
	"users",
	"posts",
	"messages",
	"qa",
	"events",
	"marketplace",
	"resources",
	"notifications",
	"moderation",
}

// DefaultExt is appended to module names given without an extension.
const DefaultExt = ".yaml"

// Source is one parsed input document.
type Source struct {
	// Name is the module name, or the shared file's base name
	Name string
	Path string
	// Shared marks the shared-definitions source
	Shared bool
	Doc    *document.Mapping
}

// moduleFile returns the file name for a module, adding DefaultExt when the
// name carries no extension.
func moduleFile(name string) string {
	if filepath.Ext(name) == "" {
		return name + DefaultExt
	}
	return name
}

// moduleName strips the extension from a module file name.
func moduleName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// exists reports whether path is present. Stat failures other than
// "not found" are load errors: an unreadable module must not be skipped.
func exists(path, module string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &specerrors.LoadError{Path: path, Module: module, Message: "checking file", Cause: err}
}

// loadSource reads and parses one source. module is empty for the shared
// file.
func loadSource(path, module string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &specerrors.LoadError{Path: path, Module: module, Message: "reading file", Cause: err}
	}

	n, err := document.Decode(data)
	if err != nil {
		return nil, &specerrors.LoadError{Path: path, Module: module, Message: "parsing YAML", Cause: err}
	}

	doc, ok := n.(*document.Mapping)
	if !ok {
		return nil, &specerrors.LoadError{
			Path:    path,
			Module:  module,
			Message: fmt.Sprintf("document root must be a mapping, got %s", n.Kind()),
		}
	}

	src := &Source{Name: module, Path: path, Shared: module == "", Doc: doc}
	if src.Shared {
		src.Name = filepath.Base(path)
	}

	if _, err := src.paths(); err != nil {
		return nil, err
	}
	if _, err := src.schemas(); err != nil {
		return nil, err
	}
	return src, nil
}

// paths returns the source's paths mapping, or nil when it has none.
func (s *Source) paths() (*document.Mapping, error) {
	return s.section(s.Doc, "paths")
}

// schemas returns components.schemas, or nil when absent.
func (s *Source) schemas() (*document.Mapping, error) {
	components, err := s.section(s.Doc, "components")
	if err != nil || components == nil {
		return nil, err
	}
	return s.section(components, "schemas")
}

// section fetches an optional mapping-valued key. A null value counts as
// absent; any other non-mapping value is a load error.
func (s *Source) section(parent *document.Mapping, key string) (*document.Mapping, error) {
	v, ok := parent.Get(key)
	if !ok {
		return nil, nil
	}
	switch x := v.(type) {
	case *document.Mapping:
		return x, nil
	case *document.Scalar:
		if x.Tag == document.TagNull {
			return nil, nil
		}
	}

	module := s.Name
	if s.Shared {
		module = ""
	}
	return nil, &specerrors.LoadError{
		Path:    s.Path,
		Module:  module,
		Message: fmt.Sprintf("%q must be a mapping, got %s", key, v.Kind()),
	}
}
