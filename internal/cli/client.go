package cli

import (
	"bufio"
	"fmt"
	"net"

	"github.com/andrewgazelka/tap/internal/registry"
	"github.com/andrewgazelka/tap/internal/rundir"
	"github.com/andrewgazelka/tap/internal/wire"
)

// registryList lists all live sessions, for auto-naming and the `list`
// subcommand.
func registryList() ([]registry.Session, error) {
	return registry.List(rundir.SessionsFile())
}

// resolveSession returns the requested session id, or the latest (last
// entry in the filtered registry list) if id is empty.
func resolveSession(id string) (registry.Session, error) {
	sessions, err := registryList()
	if err != nil {
		return registry.Session{}, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return registry.Session{}, fmt.Errorf("no running sessions")
	}
	if id == "" {
		return sessions[len(sessions)-1], nil
	}
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return registry.Session{}, fmt.Errorf("no session named %q (available: %s)", id, sessionNames(sessions))
}

func sessionNames(sessions []registry.Session) string {
	out := ""
	for i, s := range sessions {
		if i > 0 {
			out += ", "
		}
		out += s.ID
	}
	return out
}

// dial connects to a session's socket.
func dial(s registry.Session) (net.Conn, error) {
	conn, err := net.Dial("unix", s.Socket)
	if err != nil {
		return nil, fmt.Errorf("connect to session %q: %w", s.ID, err)
	}
	return conn, nil
}

// roundTrip sends a single request and reads the single response it
// expects back -- the shape every non-streaming, non-attach subcommand
// uses.
func roundTrip(conn net.Conn, req wire.Request) (wire.Response, error) {
	if err := wire.SendRequest(conn, req); err != nil {
		return wire.Response{}, fmt.Errorf("send request: %w", err)
	}
	resp, err := wire.ReadResponse(bufio.NewReader(conn))
	if err != nil {
		return wire.Response{}, fmt.Errorf("read response: %w", err)
	}
	if resp.Type == wire.RespError {
		return resp, fmt.Errorf("%s", resp.Error)
	}
	return resp, nil
}
