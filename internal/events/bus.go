package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	// TopicContactCreated carries a ContactCreatedPayload after a contact
	// row is saved.
	TopicContactCreated = "contact.created"

	// TopicFoldersDiscovered carries a FoldersDiscoveredPayload whenever
	// the folder cache fetches a live listing from the store.
	TopicFoldersDiscovered = "drive.folders.discovered"
)

type ContactCreatedPayload struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

type FoldersDiscoveredPayload struct {
	Names []string `json:"names"`
}

// HandlerFunc processes one message. Returned errors are logged and
// swallowed; side-effect handlers must never affect the request path.
type HandlerFunc func(ctx context.Context, msg *message.Message) error

// Bus is an in-process fire-and-forget pub/sub over a Watermill
// GoChannel. Publish failures and handler failures are captured by the
// logger, never propagated to callers.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger

	rootCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewBus(logger *slog.Logger) *Bus {
	rootCtx, cancel := context.WithCancel(context.Background())

	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 64,
		},
		watermill.NewSlogLogger(logger),
	)

	return &Bus{
		pubsub:  pubsub,
		logger:  logger,
		rootCtx: rootCtx,
		cancel:  cancel,
	}
}

// Publish marshals payload and publishes it on topic. Best effort.
func (b *Bus) Publish(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("failed to marshal event payload", "topic", topic, "error", err)
		return
	}

	msg := message.NewMessage(uuid.NewString(), data)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		b.logger.Error("failed to publish event", "topic", topic, "error", err)
	}
}

// Subscribe registers handler for topic under a subscriber name used only
// for logging. Handler panics are recovered and logged.
func (b *Bus) Subscribe(topic, name string, handler HandlerFunc) error {
	ch, err := b.pubsub.Subscribe(b.rootCtx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for msg := range ch {
			b.handle(topic, name, handler, msg)
		}
	}()

	return nil
}

func (b *Bus) handle(topic, name string, handler HandlerFunc, msg *message.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"topic", topic, "subscriber", name, "panic", r)
		}
		msg.Ack()
	}()

	if err := handler(b.rootCtx, msg); err != nil {
		b.logger.Error("event handler failed",
			"topic", topic, "subscriber", name, "error", err)
	}
}

func (b *Bus) Close() error {
	b.cancel()
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}
