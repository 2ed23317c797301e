// Package socketserver runs the per-session Unix-domain socket accept loop
// and the request/response dispatch described by the wire protocol, calling
// into the host for every effectful operation.
package socketserver

import (
	"bufio"
	"log"
	"net"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/andrewgazelka/tap/internal/host"
	"github.com/andrewgazelka/tap/internal/wire"
)

// Serve accepts connections on ln until it is closed (which happens when
// the host tears down), running one handler goroutine per connection.
func Serve(ln net.Listener, h *host.Host) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go handleConn(conn, h)
	}
}

func handleConn(conn net.Conn, h *host.Host) {
	defer conn.Close()
	r := bufio.NewReader(conn)

	connID := uuid.New().String()
	log.Printf("tap: conn %s opened", connID)
	defer log.Printf("tap: conn %s closed", connID)

	for {
		req, err := wire.ReadRequest(r)
		if err != nil {
			return
		}
		log.Printf("tap: conn %s request %s", connID, req.Type)

		switch req.Type {
		case wire.ReqGetScrollback:
			content := h.Scrollback.GetLines(req.Lines)
			wire.SendResponse(conn, wire.Response{Type: wire.RespScrollback, Content: content})

		case wire.ReqGetCursor:
			row, col := h.Scrollback.CursorPosition()
			wire.SendResponse(conn, wire.Response{Type: wire.RespCursor, Row: row, Col: col})

		case wire.ReqGetSize:
			rows, cols, err := ptySize(h)
			if err != nil {
				wire.SendResponse(conn, wire.Err(err.Error()))
				continue
			}
			wire.SendResponse(conn, wire.Response{Type: wire.RespSize, Rows: rows, Cols: cols})

		case wire.ReqInject:
			h.Input <- req.Data
			wire.SendResponse(conn, wire.Ok())

		case wire.ReqInput:
			h.Input <- req.Data
			wire.SendResponse(conn, wire.Ok())

		case wire.ReqResize:
			h.Resize(req.Rows, req.Cols)
			wire.SendResponse(conn, wire.Ok())

		case wire.ReqSubscribe:
			wire.SendResponse(conn, wire.Response{Type: wire.RespSubscribed})
			streamBroadcast(conn, h)
			return

		case wire.ReqAttach:
			snapshot, err := h.Attach(conn, req.Rows, req.Cols)
			if err != nil {
				wire.SendResponse(conn, wire.Err(err.Error()))
				continue
			}
			wire.SendResponse(conn, wire.Response{Type: wire.RespAttached, Scrollback: snapshot})
			h.ReadClientInput(conn)
			return

		default:
			wire.SendResponse(conn, wire.Err("unknown request type: "+req.Type))
		}
	}
}

// streamBroadcast forwards broadcast output to conn as Output messages
// until the peer disconnects (a write error) or the broadcast is closed
// (session_ended), in which case a final SessionEnded is sent.
func streamBroadcast(conn net.Conn, h *host.Host) {
	id, ch := h.Broadcast.Subscribe()
	defer h.Broadcast.Unsubscribe(id)

	for data := range ch {
		if err := wire.SendResponse(conn, wire.Response{Type: wire.RespOutput, Data: data}); err != nil {
			return
		}
	}
	wire.SendResponse(conn, wire.Response{Type: wire.RespSessionEnded})
}

func ptySize(h *host.Host) (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(h.Ptm.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		log.Printf("tap: get_size ioctl: %v", err)
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}
