package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Store interface {
	IndexProduct(ctx context.Context, prod *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type Indexer struct {
	Reader  MessageReader
	Store   Store
	Backoff time.Duration
}

// Run consumes product events until ctx is cancelled. A message is committed
// once handled, including when handling failed; the next event for the same
// product carries its full state.
func (ix *Indexer) Run(ctx context.Context) error {
	l := logging.FromContext(ctx).With("component", "indexer")
	backoff := ix.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	for {
		msg, err := ix.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.Error("fetch_failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			continue
		}

		if err := ix.Handle(ctx, msg); err != nil {
			l.Error("handle_failed", "offset", msg.Offset, "key", string(msg.Key), "error", err)
		}
		if err := ix.Reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.Error("commit_failed", "offset", msg.Offset, "error", err)
		}
	}
}

var ErrBadEvent = errors.New("bad product event")

func (ix *Indexer) Handle(ctx context.Context, msg kafka.Message) error {
	var ev mykafka.ProductEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}

	switch ev.Type {
	case mykafka.ProductCreated, mykafka.ProductUpdated:
		if ev.Product == nil {
			return fmt.Errorf("%w: %s without product", ErrBadEvent, ev.Type)
		}
		return ix.Store.IndexProduct(ctx, ev.Product)
	case mykafka.ProductDeleted:
		if ev.ProductID == "" {
			return fmt.Errorf("%w: delete without productID", ErrBadEvent)
		}
		return ix.Store.DeleteProduct(ctx, ev.ProductID)
	default:
		logging.FromContext(ctx).Debug("event_skipped", "type", ev.Type)
		return nil
	}
}
