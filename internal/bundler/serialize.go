package bundler

import (
	"github.com/unihub/apispec/internal/document"
	"github.com/unihub/apispec/internal/emit"
)

// Output file names, relative to the output directory.
const (
	YAMLFile = "openapi.yaml"
	JSONFile = "openapi.json"
)

// Output holds both renderings of a bundle.
type Output struct {
	YAML []byte
	JSON []byte
}

// Serialize renders doc as block-style YAML and two-space indented JSON,
// both preserving key order.
func Serialize(doc document.Node) (*Output, error) {
	y, err := document.EncodeYAML(doc)
	if err != nil {
		return nil, err
	}
	j, err := document.EncodeJSON(doc)
	if err != nil {
		return nil, err
	}
	return &Output{YAML: y, JSON: j}, nil
}

// Files returns the output as files for emit.Write.
func (o *Output) Files() []emit.File {
	return []emit.File{
		{Name: YAMLFile, Content: o.YAML},
		{Name: JSONFile, Content: o.JSON},
	}
}

// Bundle assembles, serializes and writes the bundle into outputDir. The
// document is fully built in memory first, so a failed assembly leaves any
// earlier output untouched.
func Bundle(a *Assembler, outputDir string) (*Result, []string, error) {
	result, err := a.Assemble()
	if err != nil {
		return nil, nil, err
	}

	out, err := Serialize(result.Document)
	if err != nil {
		return nil, nil, err
	}

	written, err := emit.Write(outputDir, out.Files())
	if err != nil {
		return result, written, err
	}
	return result, written, nil
}
