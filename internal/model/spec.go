package model

// Spec is the part of an OpenAPI document reported by inspect.
type Spec struct {
	Version  string
	Info     Info
	Servers  []Server
	Paths    []Path
	Schemas  []string
	Security []SecurityScheme
}

// OperationCount returns the number of operations across all paths.
func (s *Spec) OperationCount() int {
	n := 0
	for _, p := range s.Paths {
		n += len(p.Methods)
	}
	return n
}

// MethodCounts returns how many operations use each method, in Methods order.
func (s *Spec) MethodCounts() []MethodCount {
	counts := make(map[Method]int)
	for _, p := range s.Paths {
		for _, m := range p.Methods {
			counts[m]++
		}
	}

	var out []MethodCount
	for _, m := range Methods {
		if counts[m] > 0 {
			out = append(out, MethodCount{Method: m, Count: counts[m]})
		}
	}
	return out
}

type MethodCount struct {
	Method Method
	Count  int
}

type Info struct {
	Title       string
	Description string
	Version     string
}

type Server struct {
	URL         string
	Description string
}

type Path struct {
	Path    string
	Methods []Method
}

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// Methods lists HTTP methods in reporting order.
var Methods = []Method{
	MethodGet, MethodPost, MethodPut, MethodDelete,
	MethodPatch, MethodHead, MethodOptions, MethodTrace,
}

type SecurityScheme struct {
	Name         string
	Type         string
	Scheme       string
	BearerFormat string
}
