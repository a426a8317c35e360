package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	mandel "github.com/marben/mandelzoom"
)

// writeTimeout bounds a single band write; a client that stops reading
// for this long is dropped rather than stalling its coordinator.
const writeTimeout = 10 * time.Second

// session ties one WebSocket connection to one render coordinator.
// Requests flow client → coordinator, finished bands flow back as they
// land. The coordinator's latest-wins queue gives each burst of pan/zoom
// messages the supersession semantics for free: a slow frame is cancelled
// the moment a newer view arrives.
type session struct {
	id    string
	conn  *websocket.Conn
	coord *mandel.Coordinator
}

// serveSession runs a session until the client disconnects or misbehaves.
func serveSession(conn *websocket.Conn, workers int) {
	s := &session{
		id:   uuid.NewString()[:8],
		conn: conn,
	}
	s.coord = mandel.NewCoordinator(
		s.frameDone,
		mandel.WithWorkers(workers),
		mandel.WithBandHook(s.writeBand),
	)
	defer s.coord.Close()

	log.Printf("[%s] session started, %d workers", s.id, workers)
	if err := s.readLoop(); err != nil {
		log.Printf("[%s] session closed: %v", s.id, err)
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

// readLoop decodes render requests off the socket and feeds them to the
// coordinator. Any read or decode error ends the session.
func (s *session) readLoop() error {
	ctx := context.Background()
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageBinary {
			return fmt.Errorf("unexpected %v message", typ)
		}
		req, err := mandel.DecodeRenderRequest(data)
		if err != nil {
			return err
		}
		if req.Width == 0 || req.Height == 0 || req.View.Zoom <= 0 {
			return fmt.Errorf("bad geometry: %dx%d zoom=%g", req.Width, req.Height, req.View.Zoom)
		}
		s.coord.Render(req)
	}
}

// writeBand streams one finished band to the client. Runs on the
// coordinator's control goroutine, so writes never interleave. The chunk
// is written straight from the evaluator's buffer after the fixed header.
func (s *session) writeBand(req mandel.RenderRequest, startY uint32, chunk []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	w, err := s.conn.Writer(ctx, websocket.MessageBinary)
	if err != nil {
		log.Printf("[%s] band write: %v", s.id, err)
		return
	}
	if _, err := w.Write(mandel.EncodeBandHeader(req.Seq, req.Width, startY)); err != nil {
		log.Printf("[%s] band write: %v", s.id, err)
		w.Close()
		return
	}
	if _, err := w.Write(chunk); err != nil {
		log.Printf("[%s] band write: %v", s.id, err)
		w.Close()
		return
	}
	if err := w.Close(); err != nil {
		log.Printf("[%s] band write: %v", s.id, err)
	}
}

// frameDone is the coordinator's frame sink. The client has already
// received every band, so completion is only logged here.
func (s *session) frameDone(req mandel.RenderRequest, pix []byte) {
	log.Printf("[%s] frame %d complete: %dx%d, %d bytes", s.id, req.Seq, req.Width, req.Height, len(pix))
}
