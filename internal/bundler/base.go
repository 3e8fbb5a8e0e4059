package bundler

import "github.com/unihub/apispec/internal/document"

// OpenAPIVersion is the version string stamped on every bundle.
const OpenAPIVersion = "3.0.3"

// BearerScheme is the name of the global bearer security scheme.
const BearerScheme = "bearerAuth"

// BaseDocument returns the skeleton every bundle starts from. Each call
// builds a new tree, so callers may modify the result freely.
func BaseDocument() *document.Mapping {
	type p = document.Pair
	str := document.Str

	return document.Map(
		p{Key: "openapi", Value: str(OpenAPIVersion)},
		p{Key: "info", Value: document.Map(
			p{Key: "title", Value: str("Uni Hub API")},
			p{Key: "version", Value: str("1.0.0")},
			p{Key: "description", Value: str("Modular OpenAPI spec for Uni Hub")},
		)},
		p{Key: "servers", Value: document.Seq(
			document.Map(
				p{Key: "url", Value: str("https://api.unihub.example.com/api/v1")},
				p{Key: "description", Value: str("Production")},
			),
			document.Map(
				p{Key: "url", Value: str("http://localhost:3000/api/v1")},
				p{Key: "description", Value: str("Local Development")},
			),
		)},
		p{Key: "paths", Value: document.NewMapping()},
		p{Key: "components", Value: document.Map(
			p{Key: "securitySchemes", Value: document.Map(
				p{Key: BearerScheme, Value: document.Map(
					p{Key: "type", Value: str("http")},
					p{Key: "scheme", Value: str("bearer")},
					p{Key: "bearerFormat", Value: str("JWT")},
				)},
			)},
			p{Key: "schemas", Value: document.NewMapping()},
		)},
		p{Key: "security", Value: document.Seq(
			document.Map(p{Key: BearerScheme, Value: document.Seq()}),
		)},
	)
}
