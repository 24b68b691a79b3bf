package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	mocks "github.com/SergeyBogomolovv/publika-insight/internal/handler/mocks"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.messages[0]
	r.messages = r.messages[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestKafkaHandler(placer OrderPlacer, reader *fakeReader, dlq *fakeWriter) *kafkaHandler {
	return &kafkaHandler{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		reader: reader,
		dlq:    dlq,
		placer: placer,
	}
}

const submission = `{"full_name":"Siti Rahma","email":"siti@example.ac.id","institution":"UI",` +
	`"journal_title":"Batik","topic":"Ilmu Komputer","level":"SINTA 5","package_id":"sinta4"}`

func TestKafkaHandler_Consume(t *testing.T) {
	testCases := []struct {
		name         string
		value        string
		mockBehavior func(svc *mocks.MockOrderService)
		wantDLQ      bool
	}{
		{
			name:  "placed",
			value: submission,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					PlaceOrder(mock.Anything, mock.MatchedBy(func(f entities.OrderForm) bool {
						return f.FullName == "Siti Rahma" && f.Level == "SINTA 5"
					}), "sinta4").
					Return(entities.Order{OrderID: "ORD-1"}, nil).Once()
			},
		},
		{
			name:         "malformed json",
			value:        `{"full_name":`,
			mockBehavior: func(svc *mocks.MockOrderService) {},
			wantDLQ:      true,
		},
		{
			name:  "invalid form",
			value: `{"package_id":"sinta4"}`,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					PlaceOrder(mock.Anything, entities.OrderForm{}, "sinta4").
					Return(entities.Order{}, entities.FieldErrors{"full_name": "full name is required"}).Once()
			},
			wantDLQ: true,
		},
		{
			name:  "store failure",
			value: submission,
			mockBehavior: func(svc *mocks.MockOrderService) {
				svc.EXPECT().
					PlaceOrder(mock.Anything, mock.Anything, "sinta4").
					Return(entities.Order{}, entities.ErrSubmit).Once()
			},
			wantDLQ: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockOrderService(t)
			tc.mockBehavior(svc)

			msg := kafka.Message{Topic: "order-submissions", Key: []byte("k"), Value: []byte(tc.value), Offset: 7}
			reader := &fakeReader{messages: []kafka.Message{msg}}
			dlq := &fakeWriter{}

			newTestKafkaHandler(svc, reader, dlq).Consume(context.Background())

			require.Len(t, reader.committed, 1)
			assert.Equal(t, int64(7), reader.committed[0].Offset)

			if tc.wantDLQ {
				require.Len(t, dlq.written, 1)
				assert.Equal(t, "order-submissions-dlq", dlq.written[0].Topic)
				assert.Equal(t, []byte(tc.value), dlq.written[0].Value)
				assert.Equal(t, []byte("k"), dlq.written[0].Key)
			} else {
				assert.Empty(t, dlq.written)
			}
		})
	}
}

func TestKafkaHandler_DLQFailureSkipsCommit(t *testing.T) {
	reader := &fakeReader{messages: []kafka.Message{{Topic: "order-submissions", Value: []byte("oops")}}}
	dlq := &fakeWriter{err: errors.New("broker down")}

	newTestKafkaHandler(mocks.NewMockOrderService(t), reader, dlq).Consume(context.Background())

	assert.Empty(t, reader.committed)
}

func TestKafkaHandler_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := &fakeReader{messages: []kafka.Message{{Topic: "order-submissions", Value: []byte(submission)}}}
	newTestKafkaHandler(mocks.NewMockOrderService(t), reader, &fakeWriter{}).Consume(ctx)

	assert.Empty(t, reader.committed)
	assert.Len(t, reader.messages, 1)
}

func TestKafkaHandler_Close(t *testing.T) {
	reader := &fakeReader{}
	dlq := &fakeWriter{}

	require.NoError(t, newTestKafkaHandler(mocks.NewMockOrderService(t), reader, dlq).Close())
	assert.True(t, reader.closed)
	assert.True(t, dlq.closed)
}
