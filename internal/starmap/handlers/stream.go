package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"uqm-starseed/internal/shared/errors"
	"uqm-starseed/internal/shared/response"
	"uqm-starseed/internal/starmap"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 5 * time.Second
	progressSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// the preview API is opened up by the CORS middleware instead
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamMessage is one frame of the seeding stream
type StreamMessage struct {
	Type     string            `json:"type"`
	Progress *starmap.Progress `json:"progress,omitempty"`
	Preview  *starmap.Preview  `json:"preview,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Stream seeds a galaxy while reporting progress over a websocket, then
// sends the finished preview and closes.
func (h *StarmapHandler) Stream(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "starmap_stream")

	seed, seedType, err := parseSeedRequest(r)
	if err != nil {
		// not upgraded yet, so a plain JSON error still works
		response.Error(w, r, logger, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go watchClose(conn, cancel)

	progress := make(chan starmap.Progress, progressSize)
	done := make(chan struct{})
	var (
		res     *starmap.Result
		seedErr error
	)
	go func() {
		defer close(done)
		res, seedErr = h.seeder.Seed(ctx, starmap.Request{
			Seed: seed,
			Type: seedType,
			Progress: func(p starmap.Progress) {
				// a slow client misses intermediate steps, not the result
				select {
				case progress <- p:
				default:
				}
			},
		})
	}()

	for {
		select {
		case p := <-progress:
			if err := send(conn, StreamMessage{Type: "progress", Progress: &p}); err != nil {
				logger.Debug("Stream client went away", "error", err)
				cancel()
				<-done
				return
			}
		case <-done:
			for len(progress) > 0 {
				p := <-progress
				if err := send(conn, StreamMessage{Type: "progress", Progress: &p}); err != nil {
					return
				}
			}
			msg := StreamMessage{Type: "result"}
			if seedErr != nil {
				msg = StreamMessage{Type: "error", Error: seedErr.Error()}
				logger.Info("Streamed seeding failed", "seed", seed, "error_type", errors.GetType(seedErr))
			} else {
				msg.Preview = starmap.NewPreview(res)
			}
			if err := send(conn, msg); err != nil {
				logger.Debug("Failed to send stream result", "error", err)
				return
			}
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func send(conn *websocket.Conn, msg StreamMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// watchClose drains client frames so close messages are seen
func watchClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
