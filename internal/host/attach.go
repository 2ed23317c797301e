package host

import (
	"encoding/json"
	"io"
	"net"

	"github.com/andrewgazelka/tap/internal/wire"
)

// resizeControl is the control-frame payload for an in-attach Resize
// request, sent over the binary channel rather than as a line-JSON request.
type resizeControl struct {
	Type string `json:"type"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

// responseWriter adapts a net.Conn into an io.Writer that wraps every write
// as an Output response on the attach channel, matching the line-JSON
// protocol the subscribe path and the attaching client both speak.
type responseWriter struct{ conn net.Conn }

func (w *responseWriter) Write(p []byte) (int, error) {
	if err := wire.SendResponse(w.conn, wire.Response{Type: wire.RespOutput, Data: p}); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Attach claims the attach slot for conn, resizes the PTY to (rows, cols),
// swaps the host's I/O to the framed connection, and returns the scrollback
// snapshot to send back as the Attached response body. It returns an error
// if the slot is already occupied.
func (h *Host) Attach(conn net.Conn, rows, cols int) (snapshot string, err error) {
	if !h.AttachSlot.Claim(func() {
		h.swapIO(io.Discard, newBlockingReader())
		h.setAttachConn(nil)
	}) {
		return "", errAttachOccupied
	}

	if rows > 0 && cols > 0 {
		h.Resize(rows, cols)
	}
	h.swapIO(&responseWriter{conn: conn}, nil) // InputSrc unused once attached over the wire
	h.setAttachConn(conn)

	return h.Scrollback.GetLines(nil), nil
}

var errAttachOccupied = &attachOccupiedError{}

type attachOccupiedError struct{}

func (*attachOccupiedError) Error() string { return "session already has attached client" }

// ReadClientInput reads framed input from an attached connection until
// disconnect, dispatching data frames to the input channel and control
// frames (currently only resize) to the host directly. It releases the
// attach slot on return.
func (h *Host) ReadClientInput(conn net.Conn) {
	defer h.AttachSlot.Release()

	for {
		frameType, payload, err := wire.ReadFrame(conn)
		if err != nil {
			return
		}
		switch frameType {
		case wire.FrameTypeData:
			h.Input <- payload
		case wire.FrameTypeControl:
			var ctrl resizeControl
			if json.Unmarshal(payload, &ctrl) != nil {
				continue
			}
			if ctrl.Type == "resize" {
				h.Resize(ctrl.Rows, ctrl.Cols)
			}
		}
	}
}
