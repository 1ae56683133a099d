package server

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ik5/wavepcm/protocol"
)

const shutdownTimeout = 5 * time.Second

// ErrQuantumFrame indicates a binary frame that is not a whole number of
// float32 frames for the session's channel count.
var ErrQuantumFrame = errors.New("malformed quantum frame")

// Config holds server configuration
type Config struct {
	Addr   string
	Path   string
	Mode   protocol.Mode
	Logger *slog.Logger
}

// Server exposes one protocol sink per websocket connection.
//
// Text frames carry JSON commands. Binary frames carry one quantum as
// little-endian float32, channel after channel. Replies are JSON text
// frames; page and postBuffer replies are followed by a binary frame with
// the payload.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	sessionsMu sync.RWMutex
	sessions   map[string]*session
}

// reply is the JSON text frame sent for every outbound message.
type reply struct {
	Message string `json:"message"`
	Session string `json:"session,omitempty"`
	Length  int    `json:"length,omitempty"`
	Error   string `json:"error,omitempty"`
}

type session struct {
	id       string
	conn     *websocket.Conn
	sink     protocol.Sink
	channels int
	writeErr error
	logger   *slog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if _, err := protocol.ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		mux:      http.NewServeMux(),
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			// Origin is not checked.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.mux.HandleFunc(cfg.Path, s.handleWebSocket)

	return s, nil
}

// Handler returns the HTTP handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler { return s.mux }

// Sessions is the number of open connections.
func (s *Server) Sessions() int {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	return len(s.sessions)
}

// ListenAndServe serves on cfg.Addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("websocket server listening", "addr", s.cfg.Addr, "path", s.cfg.Path, "mode", s.cfg.Mode)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := &session{
		id:       uuid.New().String(),
		conn:     conn,
		channels: 1,
		logger:   s.logger,
	}
	sess.logger = s.logger.With("session", sess.id)

	sink, err := protocol.NewSink(s.cfg.Mode, protocol.PosterFunc(sess.post), protocol.WithLogger(sess.logger))
	if err != nil {
		sess.logger.Error("creating sink", "error", err)
		return
	}
	sess.sink = sink

	s.sessionsMu.Lock()
	s.sessions[sess.id] = sess
	s.sessionsMu.Unlock()

	defer func() {
		s.sessionsMu.Lock()
		delete(s.sessions, sess.id)
		s.sessionsMu.Unlock()
		sess.logger.Info("client disconnected")
	}()

	sess.logger.Info("client connected", "remote", r.RemoteAddr)
	sess.serve()
}

// serve reads frames until the peer leaves or the sink is closed. All
// writes happen on this goroutine.
func (sess *session) serve() {
	for {
		messageType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		switch messageType {
		case websocket.TextMessage:
			sess.handleCommand(data)
		case websocket.BinaryMessage:
			sess.handleQuantum(data)
		}

		if sess.writeErr != nil {
			sess.logger.Warn("websocket write failed", "error", sess.writeErr)
			return
		}

		if !sess.sink.Active() {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closed")
			_ = sess.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		}
	}
}

func (sess *session) handleCommand(data []byte) {
	var cmd protocol.Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		sess.sendReply(reply{Message: "error", Error: fmt.Sprintf("invalid command: %v", err)})
		return
	}

	if err := sess.sink.HandleCommand(cmd); err != nil {
		sess.sendReply(reply{Message: "error", Error: err.Error()})
		return
	}

	if cmd.Command == protocol.CommandInit {
		sess.channels = cmd.Config().WithDefaults().NumberOfChannels
	}
}

func (sess *session) handleQuantum(data []byte) {
	quantum, err := decodeQuantum(data, sess.channels)
	if err != nil {
		sess.sendReply(reply{Message: "error", Error: err.Error()})
		return
	}

	if err := sess.sink.HandleQuantum(quantum); err != nil {
		sess.sendReply(reply{Message: "error", Error: err.Error()})
	}
}

// post is the session's protocol.Poster.
func (sess *session) post(m protocol.Message) {
	payload := m.Payload()

	r := reply{Message: m.Message, Length: len(payload)}
	if m.Message == protocol.MessageReady {
		r.Session = sess.id
	}
	sess.sendReply(r)

	if payload != nil && sess.writeErr == nil {
		if err := sess.conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			sess.writeErr = err
		}
	}
}

func (sess *session) sendReply(r reply) {
	if sess.writeErr != nil {
		return
	}

	if err := sess.conn.WriteJSON(r); err != nil {
		sess.writeErr = err
	}
}

// decodeQuantum splits a binary frame into channels planar buffers.
func decodeQuantum(data []byte, channels int) ([][]float32, error) {
	if channels < 1 || len(data)%(4*channels) != 0 {
		return nil, fmt.Errorf("%w: %d bytes for %d channels", ErrQuantumFrame, len(data), channels)
	}

	frames := len(data) / 4 / channels
	quantum := make([][]float32, channels)
	for ch := range quantum {
		buf := make([]float32, frames)
		base := ch * frames * 4
		for i := range buf {
			buf[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[base+i*4:]))
		}
		quantum[ch] = buf
	}

	return quantum, nil
}

// EncodeQuantum is the inverse of the server's binary frame decoding, for
// clients written in Go.
func EncodeQuantum(quantum [][]float32) []byte {
	size := 0
	for _, ch := range quantum {
		size += len(ch) * 4
	}

	out := make([]byte, 0, size)
	for _, ch := range quantum {
		for _, v := range ch {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
	}

	return out
}
