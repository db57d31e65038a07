// Package toyhtml serves the markup parser over HTTP.
//
// A POST or PUT request carries a document in its body and gets the parse
// result back, encoded in the format named by the "format" query parameter
// (json by default). A WebSocket connection turns every text message into a
// document and answers each one with its parse result.
package toyhtml

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/dpotapov/toyhtml/markup"

	"github.com/gorilla/websocket"
)

// DefaultMaxBodyBytes limits request bodies and WebSocket messages when
// Handler.MaxBodyBytes is not set.
const DefaultMaxBodyBytes = 1 << 20

// wsUpgrader is a Gorilla WebSocket instance, used to respond HTTP requests with WebSocket.
var wsUpgrader = websocket.Upgrader{}

type Handler struct {
	// MaxDepth limits tag nesting, see markup.WithMaxDepth. Zero means no limit.
	MaxDepth int

	// WarnUnknownTags adds a warning for every tag name that is not a known HTML name.
	WarnUnknownTags bool

	// Strict rejects documents with error diagnostics. Instead of the parse result the
	// client gets a 422 response with an ErrorReport.
	Strict bool

	// MaxBodyBytes limits the size of a document. Larger requests are answered with
	// 413 Request Entity Too Large.
	// If not set, DefaultMaxBodyBytes is used.
	MaxBodyBytes int64

	// DefaultFormat is used when the request has no "format" query parameter.
	DefaultFormat markup.Format

	// OnError is a callback that is called when an error occurs while serving a request.
	OnError func(*http.Request, error)

	// Logger configures logging for internal events.
	Logger *slog.Logger

	// init is used to initialize the handler only once.
	init sync.Once

	// logger is a private logger instance that is used to log internal events.
	logger *slog.Logger
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.init.Do(func() {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if h.Logger != nil {
			h.logger = h.Logger
		}
	})

	if err := h.handleRequest(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		h.logger.Error("Serve HTTP request", "url", r.URL.Redacted(), "error", err)

		if h.OnError != nil {
			h.OnError(r, err)
		}
	}
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) error {
	format := h.DefaultFormat
	if s := r.URL.Query().Get("format"); s != "" {
		f, err := markup.ParseFormat(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil
		}
		format = f
	}

	if websocket.IsWebSocketUpgrade(r) {
		return h.serveWebSocket(w, r, format)
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut:
		return h.serveParse(w, r, format)
	default:
		w.Header().Set("Allow", "POST, PUT")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil
	}
}

func (h *Handler) serveParse(w http.ResponseWriter, r *http.Request, format markup.Format) error {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes())

	res, err := markup.ParseReader(body, h.parseOptions(r.URL.Query().Get("name"))...)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return nil
		}
		return err
	}

	h.logger.Debug("Parse document",
		"nodes", len(res.Nodes), "warnings", len(res.Warnings), "errors", len(res.Errors))

	if h.Strict {
		if perr := res.Err(); perr != nil {
			return writeErrorReport(w, NewErrorReport(perr, errorContextLines))
		}
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Parse-Warnings", strconv.Itoa(len(res.Warnings)))
	w.Header().Set("X-Parse-Errors", strconv.Itoa(len(res.Errors)))

	if err := markup.Encode(w, res, format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// serveWebSocket parses each incoming text message as a document and writes the result
// back as one message. It stops when the client closes the connection.
func (h *Handler) serveWebSocket(w http.ResponseWriter, r *http.Request, format markup.Format) error {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.SetReadLimit(h.maxBodyBytes())

	opts := h.parseOptions(r.URL.Query().Get("name"))

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read websocket message: %w", err)
		}

		res := markup.Parse(string(msg), opts...)

		mw, err := ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return fmt.Errorf("get websocket writer: %w", err)
		}

		if h.Strict && res.Err() != nil {
			err = encodeErrorReport(mw, NewErrorReport(res.Err(), errorContextLines))
		} else {
			err = markup.Encode(mw, res, format)
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}

		if err := mw.Close(); err != nil {
			return fmt.Errorf("close websocket writer: %w", err)
		}
	}
}

func (h *Handler) parseOptions(name string) []markup.Option {
	opts := []markup.Option{
		markup.WithLogger(h.logger),
		markup.WithMaxDepth(h.MaxDepth),
		markup.WithUnknownTagWarnings(h.WarnUnknownTags),
	}
	if name != "" {
		opts = append(opts, markup.WithSourceName(name))
	}
	return opts
}

func (h *Handler) maxBodyBytes() int64 {
	if h.MaxBodyBytes > 0 {
		return h.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}
