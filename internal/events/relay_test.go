package events

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxStore struct {
	pending []OutboxEvent
	sent    []uuid.UUID
	failed  []uuid.UUID
}

func (f *fakeOutboxStore) WithTx(tx *sql.Tx) OutboxRepository { return f }

func (f *fakeOutboxStore) Append(ctx context.Context, topic, key string, payload any) error {
	return nil
}

func (f *fakeOutboxStore) FetchPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutboxStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutboxStore) MarkFailed(ctx context.Context, id uuid.UUID, cause error) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakePublisher struct {
	published map[string][]string
	failTopic string
}

func (f *fakePublisher) Publish(ctx context.Context, topic, key string, value []byte) error {
	if topic == f.failTopic {
		return errors.New("broker unavailable")
	}
	if f.published == nil {
		f.published = map[string][]string{}
	}
	f.published[topic] = append(f.published[topic], key)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestRelayDrain(t *testing.T) {
	okEvent := OutboxEvent{ID: uuid.New(), Topic: TopicPayrollCreated, Key: "p-1", Payload: []byte(`{}`)}
	badEvent := OutboxEvent{ID: uuid.New(), Topic: "hr.broken", Key: "p-2", Payload: []byte(`{}`)}

	store := &fakeOutboxStore{pending: []OutboxEvent{okEvent, badEvent}}
	publisher := &fakePublisher{failTopic: "hr.broken"}

	relay := NewRelay(store, publisher)
	require.NoError(t, relay.drainOnce(context.Background()))

	// Event yang terbit ditandai SENT, yang gagal FAILED; keduanya tidak
	// saling memblokir.
	assert.Equal(t, []string{"p-1"}, publisher.published[TopicPayrollCreated])
	assert.Equal(t, []uuid.UUID{okEvent.ID}, store.sent)
	assert.Equal(t, []uuid.UUID{badEvent.ID}, store.failed)
}

func TestPayslipHandler(t *testing.T) {
	var received []PayslipEvent
	notifier := payslipNotifierFunc(func(ctx context.Context, event PayslipEvent) error {
		received = append(received, event)
		return nil
	})

	handle := PayslipHandler(notifier, nil)

	err := handle(context.Background(), kafkago.Message{
		Value: []byte(`{"payroll_id":"p-1","employee_id":"e-1","net_salary":"10570000.00"}`),
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "p-1", received[0].PayrollID)
	assert.Equal(t, "10570000.00", received[0].NetSalary)

	// Payload rusak dilewati tanpa error supaya offset tetap maju.
	err = handle(context.Background(), kafkago.Message{Value: []byte("not-json")})
	assert.NoError(t, err)
	assert.Len(t, received, 1)
}

type payslipNotifierFunc func(ctx context.Context, event PayslipEvent) error

func (f payslipNotifierFunc) NotifyPayslip(ctx context.Context, event PayslipEvent) error {
	return f(ctx, event)
}
