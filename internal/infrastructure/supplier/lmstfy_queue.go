package supplier

import (
	"fmt"
	"time"

	appconfig "orderflow/internal/infrastructure/config"

	"github.com/bitleak/lmstfy/client"
)

// Job is a message pulled from a queue.
type Job struct {
	ID    string
	Queue string
	Data  []byte
}

// LmstfyQueue wraps the lmstfy client with the calls the supplier round trip
// uses.
type LmstfyQueue struct {
	cli       *client.LmstfyClient
	namespace string
}

func NewLmstfyQueue(cfg appconfig.LmstfyConfig) *LmstfyQueue {
	return &LmstfyQueue{
		cli:       client.NewLmstfyClient(cfg.Host, cfg.Port, cfg.Namespace, cfg.Token),
		namespace: cfg.Namespace,
	}
}

func (q *LmstfyQueue) Publish(queue string, data []byte, ttl time.Duration, tries uint16) (string, error) {
	jobID, err := q.cli.Publish(queue, data, uint32(ttl.Seconds()), tries, 0)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}

// Consume waits up to timeout for a job. A nil job means nothing arrived.
// The job is redelivered after ttr unless acked.
func (q *LmstfyQueue) Consume(queue string, ttr, timeout time.Duration) (*Job, error) {
	job, err := q.cli.Consume(queue, uint32(ttr.Seconds()), uint32(timeout.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	if job == nil {
		return nil, nil
	}
	return &Job{ID: job.ID, Queue: job.Queue, Data: job.Data}, nil
}

func (q *LmstfyQueue) Ack(queue, jobID string) error {
	if err := q.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}
