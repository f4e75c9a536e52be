// Package mission wires the backend client, the event stream, and the
// projection store into a single mission lifecycle controller.
package mission

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/zulandar/missiondeck/internal/backend"
	"github.com/zulandar/missiondeck/internal/event"
	"github.com/zulandar/missiondeck/internal/models"
	"github.com/zulandar/missiondeck/internal/store"
	"github.com/zulandar/missiondeck/internal/stream"
	"github.com/zulandar/missiondeck/internal/telegraph"
)

// notifyTimeout bounds outbound notification delivery so a slow chat
// platform never stalls mission teardown.
const notifyTimeout = 10 * time.Second

// Controller drives one mission at a time. Starting a new mission tears
// down the previous stream and resets the projection.
type Controller struct {
	backend  *backend.Client
	stream   *stream.Client
	store    *store.Store
	notifier telegraph.Notifier

	// OnUpdate, when set, is invoked after every applied event with a
	// fresh snapshot. Callers use it to redraw.
	OnUpdate func(store.Snapshot)

	// OnEvent, when set, is invoked with each stream event after it has
	// been folded into the projection.
	OnEvent func(event.Event)

	// OnFinish, when set, is invoked once when the mission completes
	// (nil) or the stream fails (the stream error).
	OnFinish func(error)
}

// Opts holds parameters for creating a Controller.
type Opts struct {
	BackendURL string
	HTTPClient *http.Client        // optional, defaults per client package
	Notifier   telegraph.Notifier  // optional mission lifecycle notifications
	OnUpdate   func(store.Snapshot) // optional redraw hook
}

// New creates a Controller talking to the backend at opts.BackendURL.
func New(opts Opts) (*Controller, error) {
	if opts.BackendURL == "" {
		return nil, fmt.Errorf("mission: backend url is required")
	}

	return &Controller{
		backend:  backend.NewClient(opts.BackendURL, opts.HTTPClient),
		stream:   stream.NewClient(opts.BackendURL, opts.HTTPClient),
		store:    store.New(),
		notifier: opts.Notifier,
		OnUpdate: opts.OnUpdate,
	}, nil
}

// Store exposes the projection for command dispatch and snapshots.
func (c *Controller) Store() *store.Store {
	return c.store
}

// Start creates a mission on the backend, resets the projection, and
// subscribes to the mission's event stream. Any previous stream is torn
// down first.
func (c *Controller) Start(ctx context.Context, prompt string, files []string) (string, error) {
	id, err := c.backend.CreateMission(ctx, prompt, files)
	if err != nil {
		return "", fmt.Errorf("mission: create: %w", err)
	}

	c.store.AdoptMission(id, prompt)

	err = c.stream.Connect(ctx, id, "", stream.Callbacks{
		OnConnected: func() {
			log.Printf("mission %s: stream connected", id)
		},
		OnEvent:    c.applyEvent,
		OnError:    c.streamFailed,
		OnComplete: c.missionCompleted,
	})
	if err != nil {
		c.store.FailMission(err)
		return "", fmt.Errorf("mission: connect stream: %w", err)
	}

	return id, nil
}

// Attach subscribes to an existing mission's stream without creating one.
// Used to observe a mission started elsewhere.
func (c *Controller) Attach(ctx context.Context, missionID, title string) error {
	if missionID == "" {
		return fmt.Errorf("mission: mission id is required")
	}

	c.store.AdoptMission(missionID, title)

	err := c.stream.Connect(ctx, missionID, "", stream.Callbacks{
		OnConnected: func() {
			log.Printf("mission %s: stream connected", missionID)
		},
		OnEvent:    c.applyEvent,
		OnError:    c.streamFailed,
		OnComplete: c.missionCompleted,
	})
	if err != nil {
		c.store.FailMission(err)
		return fmt.Errorf("mission: connect stream: %w", err)
	}
	return nil
}

// SendMessage records the user's message in the projection and forwards it
// to the backend. Requires an active mission.
func (c *Controller) SendMessage(ctx context.Context, text string, attachments []models.Attachment) error {
	msg, err := c.store.AddMessage(models.ChatMessage{Content: text, Attachments: attachments})
	if err != nil {
		return err
	}
	c.update()

	if err := c.backend.SendMessage(ctx, c.store.Snapshot().Mission.ID, msg.Content, msg.Attachments); err != nil {
		return fmt.Errorf("mission: send message: %w", err)
	}
	return nil
}

// Cancel disconnects the stream and marks the mission paused. It can be
// resumed later with Attach.
func (c *Controller) Cancel() {
	c.stream.Disconnect()
	c.store.PauseMission()
	c.update()
}

// applyEvent folds one stream event into the projection.
func (c *Controller) applyEvent(evt event.Event) {
	c.store.Apply(evt)
	c.update()
	if c.OnEvent != nil {
		c.OnEvent(evt)
	}
}

// streamFailed marks the mission failed and notifies configured platforms.
func (c *Controller) streamFailed(err error) {
	c.store.FailMission(err)
	c.update()
	c.notify(telegraph.FormatMissionFailed(c.store.Snapshot()))
	if c.OnFinish != nil {
		c.OnFinish(err)
	}
}

// missionCompleted notifies configured platforms with the final snapshot.
// The completion event itself was already folded by applyEvent.
func (c *Controller) missionCompleted() {
	c.notify(telegraph.FormatMissionCompleted(c.store.Snapshot()))
	if c.OnFinish != nil {
		c.OnFinish(nil)
	}
}

func (c *Controller) notify(evt telegraph.FormattedEvent) {
	if c.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := c.notifier.Notify(ctx, evt); err != nil {
		log.Printf("mission: notify: %v", err)
	}
}

func (c *Controller) update() {
	if c.OnUpdate != nil {
		c.OnUpdate(c.store.Snapshot())
	}
}
