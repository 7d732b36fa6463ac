// Package ctrl exposes the device's configuration attributes over a local
// line-oriented control socket, standing in for the sysfs show/store
// surface of an in-kernel driver.
//
// A request is a slash-separated path, optionally followed by whitespace
// and a payload, terminated by a NUL byte. The response is a single line:
// an attribute value, a JSON document, or a problem-JSON error object.
package ctrl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
)

// Config is the control server configuration.
type Config struct {
	Addr string `help:"Control socket listen address" default:"127.0.0.1:9502" env:"G502D_CTRL_ADDR"`
}

// Server accepts control connections and dispatches them to the router.
type Server struct {
	addr   string
	ln     net.Listener
	logger *slog.Logger
	router *Router
}

// New creates a Server; handlers are registered on Router before Start.
func New(config Config, logger *slog.Logger) *Server {
	return &Server{addr: config.Addr, logger: logger, router: NewRouter()}
}

// Router returns the router so the caller can register handlers.
func (s *Server) Router() *Router { return s.router }

// Start binds the listen address and serves connections until Close.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("control surface listening", "addr", s.addr)
	go s.serve()
	return nil
}

// Addr returns the bound listen address, useful when the port was 0.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Close stops the server.
func (s *Server) Close() {
	if s.ln != nil {
		_ = s.ln.Close()
	}
}

func (s *Server) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.logger.Info("control server stopped")
				return
			}
			s.logger.Error("control accept error", "error", err)
			return
		}
		go s.handleConn(c)
	}
}

func (s *Server) writeError(w io.Writer, err error) {
	problemJSON, _ := json.Marshal(WrapError(err))
	fmt.Fprintf(w, "%s\n", string(problemJSON))
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connLogger := s.logger.With("remote", conn.RemoteAddr().String())
	r := bufio.NewReader(conn)

	reqData, err := r.ReadString('\x00')
	if err != nil {
		if err == io.EOF {
			connLogger.Error("control request missing terminator")
		} else {
			connLogger.Error("read control request", "error", err)
		}
		return
	}
	reqData = strings.TrimSuffix(reqData, "\x00")

	path, payload, _ := strings.Cut(reqData, " ")
	path = strings.TrimSpace(path)
	if path == "" {
		s.writeError(conn, ErrInvalidArgument("empty request"))
		return
	}

	connLogger.Debug("control request", "path", path)
	h, params := s.router.Match(path)
	if h == nil {
		connLogger.Warn("unknown control path", "path", path)
		s.writeError(conn, ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
		return
	}

	req := &Request{Params: params, Payload: strings.TrimSpace(payload)}
	res := &Response{}
	if err := h(req, res, connLogger); err != nil {
		connLogger.Error("control handler error", "path", path, "error", err)
		s.writeError(conn, err)
		return
	}
	fmt.Fprintf(conn, "%s\n", res.Body)
}
