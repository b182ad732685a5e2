package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/domain/entities"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"
)

const (
	KindRole         = "role"
	KindOrderChanged = "order_changed"
)

// Event is the JSON body published on every channel.
type Event struct {
	Kind      string `json:"kind"`
	Role      string `json:"role,omitempty"`
	OrderID   string `json:"order_id"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// publisher is the part of the redis client the notifier needs.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publishes role-pool notices on "<prefix>:role:<role>" and
// order-changed events on "<prefix>:orders".
type RedisNotifier struct {
	client    publisher
	prefix    string
	timeout   time.Duration
	now       func() time.Time
	delivered *atomic.Int64
	failed    *atomic.Int64
}

var _ interfaces.INotifier = (*RedisNotifier)(nil)

func NewRedisNotifier(client publisher, cfg appconfig.RedisConfig) *RedisNotifier {
	prefix := strings.TrimSpace(cfg.ChannelPrefix)
	if prefix == "" {
		prefix = "orderflow"
	}
	return &RedisNotifier{
		client:    client,
		prefix:    prefix,
		timeout:   cfg.Timeout,
		now:       func() time.Time { return time.Now().UTC() },
		delivered: atomic.NewInt64(0),
		failed:    atomic.NewInt64(0),
	}
}

// Connect opens a redis client and pings it.
func Connect(ctx context.Context, cfg appconfig.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Infof(ctx, "[notify][redis] connected addr=%s db=%d", cfg.Addr, cfg.DB)
	return client, nil
}

func (n *RedisNotifier) RoleChannel(role entities.Role) string {
	return n.prefix + ":role:" + string(role)
}

func (n *RedisNotifier) OrdersChannel() string {
	return n.prefix + ":orders"
}

func (n *RedisNotifier) NotifyRole(ctx context.Context, role entities.Role, orderID string, message string) error {
	return n.publish(ctx, n.RoleChannel(role), Event{
		Kind:    KindRole,
		Role:    string(role),
		OrderID: orderID,
		Message: message,
	})
}

func (n *RedisNotifier) OrderChanged(ctx context.Context, orderID string) error {
	return n.publish(ctx, n.OrdersChannel(), Event{Kind: KindOrderChanged, OrderID: orderID})
}

func (n *RedisNotifier) publish(ctx context.Context, channel string, ev Event) error {
	ev.Timestamp = n.now().Unix()
	body, err := json.Marshal(ev)
	if err != nil {
		n.failed.Inc()
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err := n.client.Publish(ctx, channel, body).Err(); err != nil {
		n.failed.Inc()
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	n.delivered.Inc()
	logger.Debugf(ctx, "[notify][redis] published channel=%s kind=%s order_id=%s", channel, ev.Kind, ev.OrderID)
	return nil
}

// Stats returns how many publishes succeeded and failed since start.
func (n *RedisNotifier) Stats() (delivered, failed int64) {
	return n.delivered.Load(), n.failed.Load()
}

// LogNotifier is used when no redis is configured. Notices only reach the log.
type LogNotifier struct{}

var _ interfaces.INotifier = LogNotifier{}

func (LogNotifier) NotifyRole(ctx context.Context, role entities.Role, orderID string, message string) error {
	logger.Infof(ctx, "[notify][log] role=%s order_id=%s message=%q", role, orderID, message)
	return nil
}

func (LogNotifier) OrderChanged(ctx context.Context, orderID string) error {
	logger.Debugf(ctx, "[notify][log] order changed order_id=%s", orderID)
	return nil
}
