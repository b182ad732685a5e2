package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"orderflow/internal/domain/entities"
	appconfig "orderflow/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

type published struct {
	channel string
	body    []byte
}

type fakePublisher struct {
	err  error
	sent []published
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.sent = append(f.sent, published{channel: channel, body: message.([]byte)})
	cmd.SetVal(1)
	return cmd
}

func TestRedisNotifier_NotifyRole(t *testing.T) {
	pub := &fakePublisher{}
	n := NewRedisNotifier(pub, appconfig.RedisConfig{ChannelPrefix: "of", Timeout: time.Second})
	n.now = func() time.Time { return time.Unix(1700000000, 0) }

	if err := n.NotifyRole(context.Background(), entities.RoleStorekeeper, "o-1", "new order"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.sent) != 1 || pub.sent[0].channel != "of:role:storekeeper" {
		t.Fatalf("unexpected publish: %+v", pub.sent)
	}
	var ev Event
	if err := json.Unmarshal(pub.sent[0].body, &ev); err != nil {
		t.Fatalf("body should be json: %v", err)
	}
	want := Event{Kind: KindRole, Role: "storekeeper", OrderID: "o-1", Message: "new order", Timestamp: 1700000000}
	if ev != want {
		t.Fatalf("expected %+v, got %+v", want, ev)
	}
	if d, f := n.Stats(); d != 1 || f != 0 {
		t.Fatalf("unexpected stats delivered=%d failed=%d", d, f)
	}
}

func TestRedisNotifier_OrderChanged(t *testing.T) {
	pub := &fakePublisher{}
	n := NewRedisNotifier(pub, appconfig.RedisConfig{})

	if err := n.OrderChanged(context.Background(), "o-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.sent) != 1 || pub.sent[0].channel != "orderflow:orders" {
		t.Fatalf("default prefix should be used: %+v", pub.sent)
	}
	var ev Event
	_ = json.Unmarshal(pub.sent[0].body, &ev)
	if ev.Kind != KindOrderChanged || ev.OrderID != "o-2" || ev.Role != "" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestRedisNotifier_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	n := NewRedisNotifier(pub, appconfig.RedisConfig{})

	err := n.NotifyRole(context.Background(), entities.RoleChecker, "o-3", "ready")
	if err == nil || !errors.Is(err, pub.err) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
	if d, f := n.Stats(); d != 0 || f != 1 {
		t.Fatalf("unexpected stats delivered=%d failed=%d", d, f)
	}
}

func TestLogNotifier(t *testing.T) {
	var n LogNotifier
	if err := n.NotifyRole(context.Background(), entities.RoleBiller, "o-4", "bill me"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.OrderChanged(context.Background(), "o-4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
