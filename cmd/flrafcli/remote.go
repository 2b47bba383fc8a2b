package main

import (
	"bufio"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// RemoteClient speaks the server's one-request-per-connection protocol:
// dial, send one HTTP-like request line, read the HTML reply, hang up.
type RemoteClient struct {
	Addr    string
	Timeout time.Duration
}

// Do sends the command token and returns the reply text extracted from
// the server's HTML page.
func (rc *RemoteClient) Do(token string) (string, error) {
	timeout := rc.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	conn, err := net.DialTimeout("tcp", rc.Addr, timeout)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))

	if _, err := fmt.Fprintf(conn, "GET /%s HTTP/1.1\r\n\r\n", url.PathEscape(token)); err != nil {
		return "", err
	}

	r := bufio.NewReader(conn)
	status, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	status = strings.TrimSpace(strings.TrimPrefix(status, "HTTP/1.1 "))

	// Skip headers.
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
	}

	var body strings.Builder
	for {
		line, err := r.ReadString('\n')
		body.WriteString(line)
		if err != nil {
			break
		}
	}

	reply := extractText(body.String())
	if !strings.HasPrefix(status, "200") {
		return "", fmt.Errorf("%s: %s", status, reply)
	}
	return reply, nil
}

// extractText pulls the text out of the server's single-paragraph HTML
// page; if the body doesn't look like one, it is returned trimmed as-is.
func extractText(body string) string {
	start := strings.Index(body, "<p>")
	end := strings.Index(body, "</p>")
	if start >= 0 && end > start {
		return body[start+len("<p>") : end]
	}
	return strings.TrimSpace(body)
}
