package consumer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/infrastructure/supplier"

	"github.com/shopspring/decimal"
)

type fakeQueue struct {
	mu         sync.Mutex
	jobs       []*supplier.Job
	consumeErr error
	ackErr     error
	acked      []string
	onEmpty    func()
}

func (f *fakeQueue) Consume(queue string, ttr, timeout time.Duration) (*supplier.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.consumeErr != nil {
		err := f.consumeErr
		f.consumeErr = nil
		return nil, err
	}
	if len(f.jobs) == 0 {
		if f.onEmpty != nil {
			f.onEmpty()
		}
		return nil, nil
	}
	job := f.jobs[0]
	f.jobs = f.jobs[1:]
	return job, nil
}

func (f *fakeQueue) Ack(queue, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ackErr != nil {
		return f.ackErr
	}
	f.acked = append(f.acked, jobID)
	return nil
}

type recordCall struct {
	lineID string
	resp   lifecycle.AvailabilityResponse
}

type fakeRecorder struct {
	err   error
	calls []recordCall
}

func (f *fakeRecorder) RecordAvailabilityResponse(ctx context.Context, lineID string, resp lifecycle.AvailabilityResponse) (entities.LineItem, error) {
	f.calls = append(f.calls, recordCall{lineID: lineID, resp: resp})
	if f.err != nil {
		return entities.LineItem{}, f.err
	}
	return entities.LineItem{ID: lineID}, nil
}

func testConfig() appconfig.LmstfyConfig {
	return appconfig.LmstfyConfig{ResponseQueue: "responses", TTR: 30 * time.Second, PollTimeout: time.Second}
}

func TestAvailabilityConsumer_Handle(t *testing.T) {
	cases := []struct {
		name      string
		data      string
		recordErr error
		want      Result
		wantCalls int
		wantAck   bool
	}{
		{name: "available", data: `{"line_id":"l-1","status":"available","qty":"2","supplier_ref":"s-1"}`, want: Acked, wantCalls: 1, wantAck: true},
		{name: "unavailable without qty", data: `{"line_id":"l-1","status":"unavailable"}`, want: Acked, wantCalls: 1, wantAck: true},
		{name: "not json", data: `{`, want: Dropped, wantAck: true},
		{name: "missing line", data: `{"status":"available","qty":"1"}`, want: Dropped, wantAck: true},
		{name: "unknown status", data: `{"line_id":"l-1","status":"maybe"}`, want: Dropped, wantAck: true},
		{name: "bad qty", data: `{"line_id":"l-1","status":"available","qty":"lots"}`, want: Dropped, wantAck: true},
		{name: "guard refusal", data: `{"line_id":"l-1","status":"available","qty":"1"}`, recordErr: entities.Guard("line has no open shortage"), want: Dropped, wantCalls: 1, wantAck: true},
		{name: "unknown line", data: `{"line_id":"l-9","status":"available","qty":"1"}`, recordErr: &entities.NotFound{Kind: "line", ID: "l-9"}, want: Dropped, wantCalls: 1, wantAck: true},
		{name: "cancelled order", data: `{"line_id":"l-1","status":"unavailable"}`, recordErr: entities.ErrOrderCancelled, want: Dropped, wantCalls: 1, wantAck: true},
		{name: "storage failure", data: `{"line_id":"l-1","status":"unavailable"}`, recordErr: errors.New("dynamodb timeout"), want: Retry, wantCalls: 1},
		{name: "lost race", data: `{"line_id":"l-1","status":"unavailable"}`, recordErr: entities.ErrConcurrentUpdate, want: Retry, wantCalls: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeQueue{}
			rec := &fakeRecorder{err: tc.recordErr}
			c := NewAvailabilityConsumer(q, rec, testConfig())

			got := c.Handle(context.Background(), &supplier.Job{ID: "job-1", Queue: "responses", Data: []byte(tc.data)})
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if len(rec.calls) != tc.wantCalls {
				t.Fatalf("expected %d record calls, got %d", tc.wantCalls, len(rec.calls))
			}
			if acked := len(q.acked) == 1; acked != tc.wantAck {
				t.Fatalf("ack mismatch: want %v, acked %v", tc.wantAck, q.acked)
			}
		})
	}
}

func TestAvailabilityConsumer_DecodesResponse(t *testing.T) {
	rec := &fakeRecorder{}
	c := NewAvailabilityConsumer(&fakeQueue{}, rec, testConfig())

	c.Handle(context.Background(), &supplier.Job{ID: "job-1", Data: []byte(`{"line_id":" l-1 ","status":"AVAILABLE","qty":"2.5","supplier_ref":"s-1"}`)})
	if len(rec.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(rec.calls))
	}
	call := rec.calls[0]
	if call.lineID != "l-1" || !call.resp.Available || call.resp.SupplierRef != "s-1" {
		t.Fatalf("unexpected call: %+v", call)
	}
	if !call.resp.Qty.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("expected qty 2.5, got %s", call.resp.Qty)
	}
}

func TestAvailabilityConsumer_AckFailureRetries(t *testing.T) {
	q := &fakeQueue{ackErr: errors.New("lmstfy ack failed: 500")}
	c := NewAvailabilityConsumer(q, &fakeRecorder{}, testConfig())

	got := c.Handle(context.Background(), &supplier.Job{ID: "job-1", Data: []byte(`{"line_id":"l-1","status":"unavailable"}`)})
	if got != Retry {
		t.Fatalf("expected retry, got %s", got)
	}
	if c.Handled() != 0 {
		t.Fatalf("failed ack should not count as handled")
	}
}

func TestAvailabilityConsumer_Run(t *testing.T) {
	q := &fakeQueue{
		consumeErr: errors.New("lmstfy consume failed: connection refused"),
		jobs: []*supplier.Job{
			{ID: "job-1", Data: []byte(`{"line_id":"l-1","status":"available","qty":"1"}`)},
			{ID: "job-2", Data: []byte(`{"line_id":"l-2","status":"unavailable"}`)},
		},
	}
	rec := &fakeRecorder{}
	c := NewAvailabilityConsumer(q, rec, testConfig())
	q.onEmpty = c.Shutdown

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("consumer did not stop")
	}
	if c.Handled() != 2 || len(q.acked) != 2 {
		t.Fatalf("expected both jobs handled and acked, got handled=%d acked=%v", c.Handled(), q.acked)
	}
	if c.Running() {
		t.Fatalf("consumer should not be running after Run returns")
	}
	c.Shutdown()
}

func TestAvailabilityConsumer_RunTwice(t *testing.T) {
	q := &fakeQueue{}
	c := NewAvailabilityConsumer(q, &fakeRecorder{}, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	q.onEmpty = func() {}

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		done <- c.Run(ctx)
	}()
	<-started
	deadline := time.Now().Add(5 * time.Second)
	for !c.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := c.Run(ctx); err == nil {
		t.Fatalf("second Run should fail while the first is active")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
