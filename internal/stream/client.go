// Package stream maintains the push connection to the backend mission
// executor and decodes its named frames into typed events.
//
// A Client owns at most one live connection. Connect always tears down the
// previous connection first, and a connection-generation counter guarantees
// that frames still in flight on a replaced connection are discarded instead
// of reaching a stale callback set. There is no automatic retry: completion
// and transport errors both leave the client idle until the caller connects
// again.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/zulandar/missiondeck/internal/event"
)

// maxFrameSize caps a single frame line; workflow snapshots can get large.
const maxFrameSize = 1 << 20

// Callbacks is the connection lifecycle surface. Nil entries are skipped.
// OnEvent receives every projected event, including MissionCompleteEvent;
// the connected ack is reported through OnConnected only.
type Callbacks struct {
	OnConnected func()
	OnEvent     func(event.Event)
	OnError     func(error)
	OnComplete  func()
}

// Client holds at most one live push connection to the backend.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewClient creates a stream client for the given backend base URL. A nil
// http.Client gets a default with no overall timeout: the stream stays open
// until the server completes it or the caller disconnects.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// Connect closes any existing connection, opens a new one for the mission,
// and begins decoding frames on a background goroutine. The optional task
// string is forwarded on the initiating request.
func (c *Client) Connect(ctx context.Context, missionID, task string, cb Callbacks) error {
	if missionID == "" {
		return fmt.Errorf("stream: mission id is required")
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	endpoint := fmt.Sprintf("%s/api/missions/%s/events", c.baseURL, url.PathEscape(missionID))
	if task != "" {
		endpoint += "?task=" + url.QueryEscape(task)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.teardown(gen)
		return fmt.Errorf("stream: build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.teardown(gen)
		return fmt.Errorf("stream: connect %s: %w", missionID, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		c.teardown(gen)
		return fmt.Errorf("stream: connect %s: unexpected status %s", missionID, resp.Status)
	}

	go c.read(ctx, gen, resp.Body, cb)
	return nil
}

// Disconnect closes the active connection if any. Calling it with no active
// connection is a no-op, not an error.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	// Invalidate frames already in flight on the old connection.
	c.gen++
}

// current reports whether gen is still the live connection generation.
func (c *Client) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

// teardown releases the connection resources if gen is still current.
func (c *Client) teardown(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// read consumes the frame stream until completion, transport error, or
// teardown. Frames are `event:` / `data:` line pairs terminated by a blank
// line; comment lines (leading colon) are server keepalives.
func (c *Client) read(ctx context.Context, gen uint64, body io.ReadCloser, cb Callbacks) {
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)

	var name string
	var data bytes.Buffer

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if name == "" && data.Len() == 0 {
				continue
			}
			stop := c.dispatch(gen, name, data.Bytes(), cb)
			name = ""
			data.Reset()
			if stop {
				return
			}
		case strings.HasPrefix(line, ":"):
			// Keepalive comment.
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}

	if !c.current(gen) || ctx.Err() != nil {
		// Deliberate teardown; stay silent.
		return
	}

	err := scanner.Err()
	if err == nil {
		err = fmt.Errorf("stream: connection closed before mission_complete: %w", io.ErrUnexpectedEOF)
	} else {
		err = fmt.Errorf("stream: read: %w", err)
	}
	c.teardown(gen)
	if cb.OnError != nil {
		cb.OnError(err)
	}
}

// dispatch decodes and delivers one frame. It returns true when the stream
// is terminal for this connection (mission complete or stale generation).
func (c *Client) dispatch(gen uint64, name string, payload []byte, cb Callbacks) bool {
	if !c.current(gen) {
		return true
	}
	if name == "" {
		log.Printf("stream: dropping unnamed frame")
		return false
	}

	evt, err := event.Decode(event.Name(name), payload)
	if err != nil {
		// Malformed single frames are non-fatal: drop, log, keep reading.
		log.Printf("stream: dropping frame %q: %v", name, err)
		return false
	}

	switch evt.(type) {
	case event.ConnectedEvent:
		if cb.OnConnected != nil {
			cb.OnConnected()
		}
		return false
	case event.MissionCompleteEvent:
		c.teardown(gen)
		if cb.OnEvent != nil {
			cb.OnEvent(evt)
		}
		if cb.OnComplete != nil {
			cb.OnComplete()
		}
		return true
	default:
		if cb.OnEvent != nil {
			cb.OnEvent(evt)
		}
		return false
	}
}
