package server

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const paramsContextKey contextKey = "path_params"

// Params holds path parameters extracted by ParamRouter
type Params map[string]string

// GetPathParam retrieves a path parameter from the request context
func GetPathParam(r *http.Request, name string) string {
	params, _ := r.Context().Value(paramsContextKey).(Params)
	if params == nil {
		return ""
	}
	return params[name]
}

// ParamRouter is a tiny router supporting patterns with {param} segments.
// A route registered with an empty method matches any method.
type ParamRouter struct {
	routes []route
}

type route struct {
	method  string
	pattern string
	parts   []string
	handler http.HandlerFunc
}

// NewParamRouter creates a new ParamRouter instance
func NewParamRouter() *ParamRouter {
	return &ParamRouter{routes: make([]route, 0)}
}

// Handle registers a handler for a pattern like "/api/sdk/capabilities/{name}"
func (rtr *ParamRouter) Handle(method, pattern string, handler http.HandlerFunc) {
	pattern = strings.TrimSuffix(pattern, "/")
	rtr.routes = append(rtr.routes, route{
		method:  method,
		pattern: pattern,
		parts:   splitPath(pattern),
		handler: handler,
	})
}

// ServeHTTP dispatches to the first route matching both path and method.
// A path match with no method match yields 405.
func (rtr *ParamRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	inParts := splitPath(strings.TrimSuffix(r.URL.Path, "/"))

	var allowed []string
	for _, rt := range rtr.routes {
		params, ok := rt.match(inParts)
		if !ok {
			continue
		}
		if rt.method != "" && rt.method != r.Method {
			allowed = append(allowed, rt.method)
			continue
		}
		ctx := context.WithValue(r.Context(), paramsContextKey, params)
		rt.handler(w, r.WithContext(ctx))
		return
	}

	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	http.NotFound(w, r)
}

func (rt route) match(inParts []string) (Params, bool) {
	if len(rt.parts) != len(inParts) {
		return nil, false
	}
	params := make(Params)
	for i, pp := range rt.parts {
		ip := inParts[i]
		if isParam(pp) {
			if ip == "" {
				return nil, false
			}
			params[strings.TrimSuffix(strings.TrimPrefix(pp, "{"), "}")] = ip
			continue
		}
		if pp != ip {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	if p == "" || p == "/" {
		return []string{""}
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	// Leading empty element stands for the root slash on both sides.
	return strings.Split(p, "/")
}

func isParam(seg string) bool {
	return strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2
}
