// Package api implements the store's TCP front-end: one request per
// connection, framed as an HTTP-like request line, answered with a small
// HTML page.
package api

import (
	"bufio"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gophertree/flrafbtree/db"
)

// requestPrefix is the fixed prefix of a well-formed request line; the
// first token after it is the command.
const requestPrefix = "GET /"

// Server accepts one request per connection and applies it to the store.
// The command grammar is the first path token of the request line:
//
//	?        close the tree (the next request reopens it)
//	-<key>   remove <key>
//	<key>    add <key>
type Server struct {
	store *db.Store
	log   hclog.Logger
}

func New(store *db.Store, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Server{store: store, log: logger}
}

// Serve accepts connections from l until Accept fails. Each connection
// carries exactly one request; the store is single-client, so requests
// are handled serially on the accept goroutine.
func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		s.log.Error("read request line", "error", err)
		return
	}

	cmd, ok := parseCommand(line)
	if !ok {
		s.log.Warn("malformed request line", "line", strings.TrimSpace(line))
		writePage(conn, "400 Bad Request", "malformed request")
		return
	}

	switch {
	case cmd == "?":
		if err := s.store.Close(); err != nil {
			s.log.Warn("close", "error", err)
			writePage(conn, "200 OK", "already closed")
			return
		}
		s.log.Info("tree closed")
		writePage(conn, "200 OK", "closed")

	case strings.HasPrefix(cmd, "-"):
		key := cmd[1:]
		if key == "" {
			writePage(conn, "400 Bad Request", "empty key")
			return
		}
		removed, err := s.store.Remove(key)
		if err != nil {
			s.log.Error("remove", "key", key, "error", err)
			writePage(conn, "500 Internal Server Error", err.Error())
			return
		}
		s.log.Debug("remove", "key", key, "removed", removed)
		if removed {
			writePage(conn, "200 OK", fmt.Sprintf("removed %q", key))
		} else {
			writePage(conn, "200 OK", fmt.Sprintf("%q not present", key))
		}

	default:
		added, err := s.store.Add(cmd)
		if err != nil {
			s.log.Error("add", "key", cmd, "error", err)
			writePage(conn, "500 Internal Server Error", err.Error())
			return
		}
		s.log.Debug("add", "key", cmd, "added", added)
		if added {
			writePage(conn, "200 OK", fmt.Sprintf("added %q", cmd))
		} else {
			writePage(conn, "200 OK", fmt.Sprintf("%q already present", cmd))
		}
	}
}

// parseCommand extracts the command token from an HTTP-like request
// line: the path segment between "GET /" and the next space, URL-unescaped.
func parseCommand(line string) (string, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, requestPrefix) {
		return "", false
	}
	rest := line[len(requestPrefix):]
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(rest); err == nil {
		rest = unescaped
	}
	return rest, true
}

func writePage(conn net.Conn, status, body string) {
	page := fmt.Sprintf("<html><body><p>%s</p></body></html>\r\n", body)
	fmt.Fprintf(conn, "HTTP/1.1 %s\r\nContent-Type: text/html\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s",
		status, len(page), page)
}
