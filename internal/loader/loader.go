// Package loader reads an OpenAPI document, typically a written bundle,
// back through libopenapi and reduces it to an inspection summary.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/unihub/apispec/internal/document"
	"github.com/unihub/apispec/internal/reference"
	"github.com/unihub/apispec/internal/specerrors"
)

// ErrUnsupportedVersion is returned for documents that are not OpenAPI 3.x.
var ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")

type Result struct {
	Document *libopenapi.DocumentModel[v3.Document]
	Version  string
	// Warnings lists findings that do not stop the load
	Warnings []string
	RawData  []byte
}

// LoadFile reads path and builds its v3 model. File references resolve
// against the directory of path.
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &specerrors.IOError{Op: "read", Path: path, Cause: err}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	return build(data, &datamodel.DocumentConfiguration{
		BasePath:            filepath.Dir(absPath),
		AllowFileReferences: true,
	})
}

// Load parses an in-memory document. File references are not followed.
func Load(data []byte) (*Result, error) {
	return build(data, nil)
}

func build(data []byte, config *datamodel.DocumentConfiguration) (*Result, error) {
	var doc libopenapi.Document
	var err error

	if config != nil {
		doc, err = libopenapi.NewDocumentWithConfiguration(data, config)
	} else {
		doc, err = libopenapi.NewDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("%w: %q (only 3.x is supported)", ErrUnsupportedVersion, version)
	}

	model, err := doc.BuildV3Model()
	if err != nil {
		return nil, fmt.Errorf("building OpenAPI model: %w", err)
	}

	return &Result{
		Document: model,
		Version:  version,
		Warnings: warnings(data, &model.Model),
		RawData:  data,
	}, nil
}

func warnings(data []byte, doc *v3.Document) []string {
	var out []string

	if doc.Paths == nil || doc.Paths.PathItems == nil || doc.Paths.PathItems.Len() == 0 {
		out = append(out, "document has no paths")
	}

	// a bundle is self-contained; a file reference left behind points
	// somewhere other than the shared file
	if tree, err := document.Decode(data); err == nil {
		for _, ref := range reference.Externals(tree) {
			out = append(out, "external reference left in document: "+ref)
		}
	}

	return out
}
