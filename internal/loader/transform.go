package loader

import (
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/unihub/apispec/internal/model"
)

// Transform reduces a loaded document to the summary printed by inspect.
// Paths, schemas and security schemes keep document order.
func Transform(result *Result) *model.Spec {
	doc := result.Document.Model

	spec := &model.Spec{
		Version: result.Version,
		Info:    summarizeInfo(doc.Info),
	}

	for _, s := range doc.Servers {
		spec.Servers = append(spec.Servers, model.Server{URL: s.URL, Description: s.Description})
	}

	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for key, item := range doc.Paths.PathItems.FromOldest() {
			spec.Paths = append(spec.Paths, model.Path{Path: key, Methods: methodsOf(item)})
		}
	}

	if doc.Components == nil {
		return spec
	}
	if doc.Components.Schemas != nil {
		for name := range doc.Components.Schemas.FromOldest() {
			spec.Schemas = append(spec.Schemas, name)
		}
	}
	if doc.Components.SecuritySchemes != nil {
		for name, scheme := range doc.Components.SecuritySchemes.FromOldest() {
			spec.Security = append(spec.Security, model.SecurityScheme{
				Name:         name,
				Type:         scheme.Type,
				Scheme:       scheme.Scheme,
				BearerFormat: scheme.BearerFormat,
			})
		}
	}

	return spec
}

func summarizeInfo(info *base.Info) model.Info {
	if info == nil {
		return model.Info{}
	}
	return model.Info{
		Title:       info.Title,
		Description: info.Description,
		Version:     info.Version,
	}
}

// methodsOf lists the methods item defines, in model.Methods order.
func methodsOf(item *v3.PathItem) []model.Method {
	ops := map[model.Method]*v3.Operation{
		model.MethodGet:     item.Get,
		model.MethodPost:    item.Post,
		model.MethodPut:     item.Put,
		model.MethodDelete:  item.Delete,
		model.MethodPatch:   item.Patch,
		model.MethodHead:    item.Head,
		model.MethodOptions: item.Options,
		model.MethodTrace:   item.Trace,
	}

	var methods []model.Method
	for _, m := range model.Methods {
		if ops[m] != nil {
			methods = append(methods, m)
		}
	}
	return methods
}
