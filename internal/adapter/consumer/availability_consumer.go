package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/infrastructure/supplier"
	"orderflow/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/atomic"
)

// Queue is the lmstfy side of the consumer.
type Queue interface {
	Consume(queue string, ttr, timeout time.Duration) (*supplier.Job, error)
	Ack(queue, jobID string) error
}

// AvailabilityRecorder applies a supplier answer to a line.
type AvailabilityRecorder interface {
	RecordAvailabilityResponse(ctx context.Context, lineID string, resp lifecycle.AvailabilityResponse) (entities.LineItem, error)
}

// Result says what happened to one job.
type Result int

const (
	Acked Result = iota
	Dropped
	Retry
)

func (r Result) String() string {
	switch r {
	case Acked:
		return "acked"
	case Dropped:
		return "dropped"
	}
	return "retry"
}

// AvailabilityConsumer pulls supplier answers and records them. Jobs are
// acked on success; malformed jobs and permanent refusals are acked and
// dropped; anything else is left for lmstfy to redeliver after the TTR.
type AvailabilityConsumer struct {
	queue    Queue
	recorder AvailabilityRecorder
	name     string
	ttr      time.Duration
	timeout  time.Duration
	backoff  time.Duration
	running  *atomic.Bool
	handled  *atomic.Int64
	stopCh   chan struct{}
}

func NewAvailabilityConsumer(queue Queue, recorder AvailabilityRecorder, cfg appconfig.LmstfyConfig) *AvailabilityConsumer {
	return &AvailabilityConsumer{
		queue:    queue,
		recorder: recorder,
		name:     cfg.ResponseQueue,
		ttr:      cfg.TTR,
		timeout:  cfg.PollTimeout,
		backoff:  cfg.ErrorBackoff,
		running:  atomic.NewBool(false),
		handled:  atomic.NewInt64(0),
		stopCh:   make(chan struct{}),
	}
}

// Run polls until ctx is done or Shutdown is called.
func (c *AvailabilityConsumer) Run(ctx context.Context) error {
	if !c.running.CAS(false, true) {
		return errors.New("consumer already running")
	}
	defer c.running.Store(false)
	logger.Infof(ctx, "[supplier][consumer] started queue=%s", c.name)

	for {
		select {
		case <-ctx.Done():
			logger.Infof(ctx, "[supplier][consumer] context done handled=%d", c.handled.Load())
			return nil
		case <-c.stopCh:
			logger.Infof(ctx, "[supplier][consumer] shutdown handled=%d", c.handled.Load())
			return nil
		default:
		}

		job, err := c.queue.Consume(c.name, c.ttr, c.timeout)
		if err != nil {
			logger.Errorf(ctx, "[supplier][consumer] consume failed queue=%s err=%v", c.name, err)
			c.sleep(ctx)
			continue
		}
		if job == nil {
			continue
		}
		c.Handle(ctx, job)
	}
}

// Shutdown stops the poll loop after the job in flight.
func (c *AvailabilityConsumer) Shutdown() {
	select {
	case <-c.stopCh:
	default:
		close(c.stopCh)
	}
}

func (c *AvailabilityConsumer) Running() bool { return c.running.Load() }

func (c *AvailabilityConsumer) Handled() int64 { return c.handled.Load() }

func (c *AvailabilityConsumer) sleep(ctx context.Context) {
	if c.backoff <= 0 {
		return
	}
	t := time.NewTimer(c.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-c.stopCh:
	case <-t.C:
	}
}

// Handle processes one job and acks it unless it should be retried.
func (c *AvailabilityConsumer) Handle(ctx context.Context, job *supplier.Job) Result {
	res := c.process(ctx, job)
	if res != Retry {
		if err := c.queue.Ack(c.name, job.ID); err != nil {
			logger.Errorf(ctx, "[supplier][consumer] ack failed job_id=%s err=%v", job.ID, err)
			return Retry
		}
	}
	c.handled.Inc()
	logger.Infof(ctx, "[supplier][consumer] job done job_id=%s result=%s", job.ID, res)
	return res
}

func (c *AvailabilityConsumer) process(ctx context.Context, job *supplier.Job) Result {
	lineID, resp, err := decode(job.Data)
	if err != nil {
		logger.Warnf(ctx, "[supplier][consumer] malformed job job_id=%s err=%v", job.ID, err)
		return Dropped
	}
	if _, err := c.recorder.RecordAvailabilityResponse(ctx, lineID, resp); err != nil {
		if permanent(err) {
			logger.Warnf(ctx, "[supplier][consumer] response refused job_id=%s line_id=%s err=%v", job.ID, lineID, err)
			return Dropped
		}
		logger.Errorf(ctx, "[supplier][consumer] record failed job_id=%s line_id=%s err=%v", job.ID, lineID, err)
		return Retry
	}
	return Acked
}

func decode(data []byte) (string, lifecycle.AvailabilityResponse, error) {
	var msg supplier.AvailabilityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return "", lifecycle.AvailabilityResponse{}, err
	}
	lineID := strings.TrimSpace(msg.LineID)
	if lineID == "" {
		return "", lifecycle.AvailabilityResponse{}, errors.New("line_id is required")
	}
	resp := lifecycle.AvailabilityResponse{SupplierRef: msg.SupplierRef}
	switch strings.ToLower(strings.TrimSpace(msg.Status)) {
	case supplier.StatusAvailable:
		resp.Available = true
	case supplier.StatusUnavailable:
	default:
		return "", lifecycle.AvailabilityResponse{}, fmt.Errorf("unknown status %q", msg.Status)
	}
	if q := strings.TrimSpace(msg.Qty); q != "" {
		qty, err := decimal.NewFromString(q)
		if err != nil {
			return "", lifecycle.AvailabilityResponse{}, fmt.Errorf("invalid qty: %w", err)
		}
		resp.Qty = qty
	}
	return lineID, resp, nil
}

// permanent errors will not change on redelivery.
func permanent(err error) bool {
	var nf *entities.NotFound
	return entities.IsGuardViolation(err) ||
		errors.As(err, &nf) ||
		errors.Is(err, entities.ErrInvalidInput) ||
		errors.Is(err, entities.ErrOrderCancelled)
}
