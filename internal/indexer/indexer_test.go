package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
)

type fakeStore struct {
	indexed []string
	deleted []string
	err     error
}

func (f *fakeStore) IndexProduct(ctx context.Context, prod *models.Product) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, prod.ID)
	return nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeReader serves queued messages, then cancels the run.
type fakeReader struct {
	msgs      []kafka.Message
	committed []int64
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func eventMessage(t *testing.T, offset int64, ev mykafka.ProductEvent) kafka.Message {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafka.Message{Topic: mykafka.TopicProducts, Offset: offset, Key: []byte(ev.ProductID), Value: b}
}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	ix := &Indexer{Store: store}

	prod := &models.Product{ID: "64b7f0c2a1b2c3d4e5f60718", Name: "Lamp"}
	require.NoError(t, ix.Handle(ctx, eventMessage(t, 1, mykafka.ProductEvent{Type: mykafka.ProductCreated, ProductID: prod.ID, Product: prod})))
	require.NoError(t, ix.Handle(ctx, eventMessage(t, 2, mykafka.ProductEvent{Type: mykafka.ProductUpdated, ProductID: prod.ID, Product: prod})))
	require.NoError(t, ix.Handle(ctx, eventMessage(t, 3, mykafka.ProductEvent{Type: mykafka.ProductDeleted, ProductID: prod.ID})))
	require.NoError(t, ix.Handle(ctx, eventMessage(t, 4, mykafka.ProductEvent{Type: "something_else"})))

	assert.Equal(t, []string{prod.ID, prod.ID}, store.indexed)
	assert.Equal(t, []string{prod.ID}, store.deleted)
}

func TestHandleRejectsBadEvents(t *testing.T) {
	ix := &Indexer{Store: &fakeStore{}}

	err := ix.Handle(context.Background(), kafka.Message{Value: []byte("{not json")})
	assert.ErrorIs(t, err, ErrBadEvent)

	err = ix.Handle(context.Background(), eventMessage(t, 1, mykafka.ProductEvent{Type: mykafka.ProductCreated, ProductID: "x"}))
	assert.ErrorIs(t, err, ErrBadEvent)
}

func TestRunCommitsEveryMessage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prod := &models.Product{ID: "64b7f0c2a1b2c3d4e5f60718", Name: "Lamp"}
	reader := &fakeReader{cancel: cancel, msgs: []kafka.Message{
		eventMessage(t, 10, mykafka.ProductEvent{Type: mykafka.ProductCreated, ProductID: prod.ID, Product: prod}),
		{Offset: 11, Value: []byte("garbage")},
		eventMessage(t, 12, mykafka.ProductEvent{Type: mykafka.ProductDeleted, ProductID: prod.ID}),
	}}
	store := &fakeStore{}

	ix := &Indexer{Reader: reader, Store: store, Backoff: time.Millisecond}
	require.NoError(t, ix.Run(ctx))

	assert.Equal(t, []int64{10, 11, 12}, reader.committed)
	assert.Equal(t, []string{prod.ID}, store.indexed)
	assert.Equal(t, []string{prod.ID}, store.deleted)
}

func TestRunKeepsGoingOnStoreError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reader := &fakeReader{cancel: cancel, msgs: []kafka.Message{
		eventMessage(t, 1, mykafka.ProductEvent{Type: mykafka.ProductDeleted, ProductID: "a"}),
		eventMessage(t, 2, mykafka.ProductEvent{Type: mykafka.ProductDeleted, ProductID: "b"}),
	}}
	ix := &Indexer{Reader: reader, Store: &fakeStore{err: errors.New("es down")}}

	require.NoError(t, ix.Run(ctx))
	assert.Equal(t, []int64{1, 2}, reader.committed)
}
