package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/domain/lifecycle"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"
)

// ShortageMessage is the body of a shortage query job.
type ShortageMessage struct {
	OrderID      string `json:"order_id"`
	LineID       string `json:"line_id"`
	ProductRef   string `json:"product_ref"`
	RequestedQty string `json:"requested_qty"`
	SupplierRef  string `json:"supplier_ref,omitempty"`
	RequestedAt  string `json:"requested_at"`
}

// AvailabilityMessage is the body of a supplier's answer job.
type AvailabilityMessage struct {
	LineID      string `json:"line_id"`
	Status      string `json:"status"`
	Qty         string `json:"qty"`
	SupplierRef string `json:"supplier_ref,omitempty"`
}

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

type publisher interface {
	Publish(queue string, data []byte, ttl time.Duration, tries uint16) (string, error)
}

// LmstfyGateway publishes shortage queries for the supplier side to answer.
type LmstfyGateway struct {
	queue publisher
	name  string
	ttl   time.Duration
	tries uint16
	now   func() time.Time
}

var _ interfaces.ISupplierGateway = (*LmstfyGateway)(nil)

func NewLmstfyGateway(queue publisher, cfg appconfig.LmstfyConfig) *LmstfyGateway {
	tries := cfg.Tries
	if tries <= 0 {
		tries = 1
	}
	return &LmstfyGateway{
		queue: queue,
		name:  cfg.ShortageQueue,
		ttl:   cfg.JobTTL,
		tries: uint16(tries),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (g *LmstfyGateway) QueryAvailability(ctx context.Context, q lifecycle.ShortageQuery) error {
	body, err := json.Marshal(ShortageMessage{
		OrderID:      q.OrderID,
		LineID:       q.LineID,
		ProductRef:   q.ProductRef,
		RequestedQty: q.RequestedQty.String(),
		SupplierRef:  q.SupplierRef,
		RequestedAt:  g.now().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal shortage query: %w", err)
	}
	jobID, err := g.queue.Publish(g.name, body, g.ttl, g.tries)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "[supplier][lmstfy] shortage query published queue=%s job_id=%s line_id=%s", g.name, jobID, q.LineID)
	return nil
}

// LogGateway stands in when no queue is configured. Queries are logged and the
// line stays pending until someone records a response by hand.
type LogGateway struct{}

var _ interfaces.ISupplierGateway = LogGateway{}

func (LogGateway) QueryAvailability(ctx context.Context, q lifecycle.ShortageQuery) error {
	logger.Warnf(ctx, "[supplier][log] no supplier queue configured line_id=%s product_ref=%s requested_qty=%s",
		q.LineID, q.ProductRef, q.RequestedQty)
	return nil
}
