package bundler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unihub/apispec/internal/document"
	"github.com/unihub/apispec/internal/specerrors"
)

const sharedYAML = `openapi: 3.0.3
info:
  title: Shared
  version: 1.0.0
paths:
  /ignored:
    get:
      summary: shared paths are not bundled
components:
  schemas:
    User:
      type: object
      properties:
        id:
          type: string
    Error:
      type: object
      properties:
        message:
          type: string
`

const authYAML = `paths:
  /api/v1/auth/login:
    post:
      summary: Log in
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                $ref: '../shared.yaml#/components/schemas/User'
        '401':
          description: Unauthorized
          content:
            application/json:
              schema:
                $ref: '../shared.yaml#/components/schemas/Error'
`

const usersYAML = `paths:
  /api/v1/users/{id}:
    get:
      summary: Get user
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/UserProfile'
  /health:
    get:
      summary: Health
      responses:
        '200':
          description: OK
components:
  schemas:
    UserProfile:
      allOf:
        - $ref: '../shared.yaml#/components/schemas/User'
        - type: object
          properties:
            bio:
              type: string
            avatar:
              $ref: './media.yaml#/Avatar'
`

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func mapping(t *testing.T, m *document.Mapping, keys ...string) *document.Mapping {
	t.Helper()
	for _, k := range keys {
		child, ok := m.Mapping(k)
		require.True(t, ok, "missing mapping %q", k)
		m = child
	}
	return m
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/api/v1/users/{id}", "/users/{id}"},
		{"/api/v1", ""},
		{"/users", "/users"},
		{"/v2/api/v1/users", "/v2/api/v1/users"},
		{"/api/v10/things", "0/things"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestBaseDocumentIsFreshEachCall(t *testing.T) {
	a := BaseDocument()
	b := BaseDocument()
	require.True(t, document.Equal(a, b))
	require.Equal(t, []string{"openapi", "info", "servers", "paths", "components", "security"}, a.Keys())

	mapping(t, a, "components", "schemas").Set("Leak", document.Str("x"))
	require.Equal(t, 0, mapping(t, b, "components", "schemas").Len())
	require.Equal(t, 0, mapping(t, BaseDocument(), "components", "schemas").Len())
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml":        sharedYAML,
		"modules/auth.yaml":  authYAML,
		"modules/users.yaml": usersYAML,
	})

	result, err := New(Options{BaseDir: dir}).Assemble()
	require.NoError(t, err)

	require.Equal(t, []string{"auth", "users"}, result.Modules)
	require.Equal(t, []string{"posts", "messages", "qa", "events", "marketplace", "resources", "notifications", "moderation"}, result.Skipped)
	require.Empty(t, result.Warnings)

	doc := result.Document
	require.Equal(t, []string{"openapi", "info", "servers", "paths", "components", "security"}, doc.Keys())

	title, _ := mapping(t, doc, "info").String("title")
	require.Equal(t, "Uni Hub API", title)

	paths := mapping(t, doc, "paths")
	require.Equal(t, []string{"/auth/login", "/users/{id}", "/health"}, paths.Keys())
	require.Equal(t, 3, result.PathCount())

	schemas := mapping(t, doc, "components", "schemas")
	require.Equal(t, []string{"User", "Error", "UserProfile"}, schemas.Keys())
	require.Equal(t, 3, result.SchemaCount())

	loginSchema := mapping(t, paths, "/auth/login", "post", "responses", "200", "content", "application/json", "schema")
	ref, _ := loginSchema.String("$ref")
	require.Equal(t, "#/components/schemas/User", ref)

	errSchema := mapping(t, paths, "/auth/login", "post", "responses", "401", "content", "application/json", "schema")
	ref, _ = errSchema.String("$ref")
	require.Equal(t, "#/components/schemas/Error", ref)

	profile := mapping(t, schemas, "UserProfile")
	allOf, _ := profile.Get("allOf")
	items := allOf.(*document.Sequence).Items
	ref, _ = items[0].(*document.Mapping).String("$ref")
	require.Equal(t, "#/components/schemas/User", ref)

	avatar := mapping(t, items[1].(*document.Mapping), "properties", "avatar")
	ref, _ = avatar.String("$ref")
	require.Equal(t, "./media.yaml#/Avatar", ref, "references to other files are left alone")

	usersSchema := mapping(t, paths, "/users/{id}", "get", "responses", "200", "content", "application/json", "schema")
	ref, _ = usersSchema.String("$ref")
	require.Equal(t, "#/components/schemas/UserProfile", ref)
}

func TestAssembleMergePrecedence(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml": `components:
  schemas:
    A:
      description: s1
      type: string
`,
		"modules/one.yaml": `components:
  schemas:
    A:
      description: s2
    B:
      description: s3
`,
		"modules/two.yaml": `components:
  schemas:
    A:
      description: s4
`,
	})

	result, err := New(Options{BaseDir: dir, Modules: []string{"one", "two"}}).Assemble()
	require.NoError(t, err)

	schemas := mapping(t, result.Document, "components", "schemas")
	want := document.Map(
		document.Pair{Key: "A", Value: document.Map(document.Pair{Key: "description", Value: document.Str("s4")})},
		document.Pair{Key: "B", Value: document.Map(document.Pair{Key: "description", Value: document.Str("s3")})},
	)
	require.True(t, document.Equal(want, schemas), "later sources must replace whole schemas")

	require.Len(t, result.Warnings, 1)
	require.Contains(t, result.Warnings[0], `schema "A" from shared.yaml is overridden by module one`)
}

func TestAssemblePathCollisionLastModuleWins(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml": "components:\n  schemas: {}\n",
		"modules/a.yaml": `paths:
  /api/v1/items:
    get:
      summary: from a
    post:
      summary: only in a
`,
		"modules/b.yaml": `paths:
  /items:
    get:
      summary: from b
`,
	})

	result, err := New(Options{BaseDir: dir, Modules: []string{"a", "b"}}).Assemble()
	require.NoError(t, err)

	item := mapping(t, result.Document, "paths", "/items")
	require.Equal(t, []string{"get"}, item.Keys(), "colliding path items are replaced, not merged")
	summary, _ := mapping(t, item, "get").String("summary")
	require.Equal(t, "from b", summary)
	require.Empty(t, result.Warnings)
}

func TestAssembleMissingModuleIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml":       sharedYAML,
		"modules/auth.yaml": authYAML,
	})

	result, err := New(Options{BaseDir: dir, Modules: []string{"auth", "users"}}).Assemble()
	require.NoError(t, err)
	require.Equal(t, []string{"auth"}, result.Modules)
	require.Equal(t, []string{"users"}, result.Skipped)
	require.Equal(t, []string{"/auth/login"}, mapping(t, result.Document, "paths").Keys())
	require.Equal(t, []string{"User", "Error"}, mapping(t, result.Document, "components", "schemas").Keys())
}

func TestAssembleModuleNamesWithExtension(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"defs.yaml":      "components:\n  schemas:\n    Page:\n      type: object\n",
		"mods/feed.yml":  "paths:\n  /api/v1/feed:\n    get:\n      responses:\n        '200':\n          $ref: '../defs.yaml#/components/schemas/Page'\n",
		"mods/empty.yml": "",
	})

	result, err := New(Options{
		BaseDir:    dir,
		Shared:     "defs.yaml",
		ModulesDir: "mods",
		Modules:    []string{"feed.yml", "empty.yml"},
	}).Assemble()
	require.NoError(t, err)
	require.Equal(t, []string{"feed", "empty"}, result.Modules)

	ok := mapping(t, result.Document, "paths", "/feed", "get", "responses", "200")
	ref, _ := ok.String("$ref")
	require.Equal(t, "#/components/schemas/Page", ref)
}

func TestAssembleLoadErrors(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		wantModule string
		contains   string
	}{
		{
			name:     "missing shared",
			files:    map[string]string{"modules/auth.yaml": authYAML},
			contains: "reading file",
		},
		{
			name:     "malformed shared",
			files:    map[string]string{"shared.yaml": "components: [\n"},
			contains: "parsing YAML",
		},
		{
			name:     "shared root is a list",
			files:    map[string]string{"shared.yaml": "- a\n- b\n"},
			contains: "document root must be a mapping",
		},
		{
			name: "malformed module",
			files: map[string]string{
				"shared.yaml":        sharedYAML,
				"modules/auth.yaml":  authYAML,
				"modules/users.yaml": "paths:\n  /x: {\n",
			},
			wantModule: "users",
			contains:   "parsing YAML",
		},
		{
			name: "module paths not a mapping",
			files: map[string]string{
				"shared.yaml":       sharedYAML,
				"modules/auth.yaml": "paths:\n  - /a\n",
			},
			wantModule: "auth",
			contains:   `"paths" must be a mapping`,
		},
		{
			name: "module schemas not a mapping",
			files: map[string]string{
				"shared.yaml":       sharedYAML,
				"modules/auth.yaml": "components:\n  schemas: nope\n",
			},
			wantModule: "auth",
			contains:   `"schemas" must be a mapping`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTree(t, dir, tt.files)

			_, err := New(Options{BaseDir: dir, Modules: []string{"auth", "users"}}).Assemble()
			require.ErrorIs(t, err, specerrors.ErrLoad)

			var loadErr *specerrors.LoadError
			require.ErrorAs(t, err, &loadErr)
			require.Equal(t, tt.wantModule, loadErr.Module)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestAssembleNullSectionsAreIgnored(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml":       "components:\n",
		"modules/auth.yaml": "paths:\ncomponents:\n  schemas:\n",
	})

	result, err := New(Options{BaseDir: dir, Modules: []string{"auth"}}).Assemble()
	require.NoError(t, err)
	require.Equal(t, 0, result.PathCount())
	require.Equal(t, 0, result.SchemaCount())
}

func TestBundleWritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml":        sharedYAML,
		"modules/auth.yaml":  authYAML,
		"modules/users.yaml": usersYAML,
	})
	out := filepath.Join(dir, "dist")

	result, written, err := Bundle(New(Options{BaseDir: dir}), out)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, YAMLFile), filepath.Join(out, JSONFile)}, written)

	yamlData, err := os.ReadFile(filepath.Join(out, YAMLFile))
	require.NoError(t, err)
	jsonData, err := os.ReadFile(filepath.Join(out, JSONFile))
	require.NoError(t, err)

	require.NotContains(t, string(yamlData), "&", "no anchors")
	require.NotContains(t, string(yamlData), "*", "no aliases")
	require.NotContains(t, string(yamlData), "../shared.yaml")
	require.Contains(t, string(jsonData), "\n  \"openapi\": \"3.0.3\",\n")

	fromYAML, err := document.Decode(yamlData)
	require.NoError(t, err)
	require.True(t, document.Equal(result.Document, fromYAML), "YAML output must round-trip")

	fromJSON, err := document.Decode(jsonData)
	require.NoError(t, err)
	require.True(t, document.Equal(result.Document, fromJSON), "JSON output must round-trip")
}

func TestBundleIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml":        sharedYAML,
		"modules/auth.yaml":  authYAML,
		"modules/users.yaml": usersYAML,
	})
	out := filepath.Join(dir, "dist")

	_, _, err := Bundle(New(Options{BaseDir: dir}), out)
	require.NoError(t, err)
	firstYAML, _ := os.ReadFile(filepath.Join(out, YAMLFile))
	firstJSON, _ := os.ReadFile(filepath.Join(out, JSONFile))

	_, _, err = Bundle(New(Options{BaseDir: dir}), out)
	require.NoError(t, err)
	secondYAML, _ := os.ReadFile(filepath.Join(out, YAMLFile))
	secondJSON, _ := os.ReadFile(filepath.Join(out, JSONFile))

	require.Equal(t, firstYAML, secondYAML)
	require.Equal(t, firstJSON, secondJSON)
}

func TestBundleFailureLeavesOutputUntouched(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "dist")
	writeTree(t, dir, map[string]string{
		"dist/openapi.yaml": "stale: true\n",
		"modules/auth.yaml": authYAML,
	})

	_, written, err := Bundle(New(Options{BaseDir: dir}), out)
	require.ErrorIs(t, err, specerrors.ErrLoad)
	require.Empty(t, written)

	data, err := os.ReadFile(filepath.Join(out, YAMLFile))
	require.NoError(t, err)
	require.Equal(t, "stale: true\n", string(data))
	_, err = os.Stat(filepath.Join(out, JSONFile))
	require.True(t, os.IsNotExist(err))
}

func TestBundleMissingSharedCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "dist")

	_, _, err := Bundle(New(Options{BaseDir: dir}), out)
	require.ErrorIs(t, err, specerrors.ErrLoad)

	_, err = os.Stat(out)
	require.True(t, os.IsNotExist(err), "output directory must not be created")
}

func TestBundleUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"shared.yaml": sharedYAML,
		"dist":        "a file where the directory should be",
	})

	_, _, err := Bundle(New(Options{BaseDir: dir}), filepath.Join(dir, "dist"))
	require.ErrorIs(t, err, specerrors.ErrIO)
}
