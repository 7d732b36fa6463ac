package ctrl

import (
	"log/slog"
	"strings"
)

// Request carries route parameters and the payload following the path.
type Request struct {
	Params  map[string]string
	Payload string
}

// Response holds the body line returned to the client. The server appends
// the trailing newline.
type Response struct {
	Body string
}

// HandlerFunc processes one control request. The logger is
// connection-scoped, enriched with the remote address.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// Router matches slash-separated paths with {name} placeholders.
type Router struct {
	routes []routeEntry
}

type routeEntry struct {
	pattern string
	parts   []string
	handler HandlerFunc
}

// NewRouter returns an empty Router.
func NewRouter() *Router { return &Router{} }

// Register registers a handler for a pattern like "attr/{name}/show".
func (r *Router) Register(pattern string, handler HandlerFunc) {
	p := strings.ToLower(pattern)
	r.routes = append(r.routes, routeEntry{pattern: p, parts: strings.Split(p, "/"), handler: handler})
}

// Match returns the handler and extracted parameters for a path, or nil
// when nothing matches.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	parts := strings.Split(strings.ToLower(path), "/")
	for _, rt := range r.routes {
		if len(rt.parts) != len(parts) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i := range parts {
			if strings.HasPrefix(rt.parts[i], "{") && strings.HasSuffix(rt.parts[i], "}") {
				params[rt.parts[i][1:len(rt.parts[i])-1]] = parts[i]
				continue
			}
			if rt.parts[i] != parts[i] {
				ok = false
				break
			}
		}
		if ok {
			return rt.handler, params
		}
	}
	return nil, nil
}
