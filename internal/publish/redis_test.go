package publish

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/lox/barocast/internal/forecast"
	"github.com/lox/barocast/internal/models"
)

type setCall struct {
	key   string
	value []byte
	ttl   time.Duration
}

type fakeRedis struct {
	sets       []setCall
	published  map[string][]byte
	setErr     error
	publishErr error
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets = append(f.sets, setCall{key: key, value: value.([]byte), ttl: expiration})
	return redis.NewStatusResult("OK", f.setErr)
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	if f.published == nil {
		f.published = map[string][]byte{}
	}
	f.published[channel] = message.([]byte)
	return redis.NewIntResult(1, f.publishErr)
}

func testSnapshot(t *testing.T) *forecast.Snapshot {
	t.Helper()
	engine := forecast.NewEngine(forecast.Options{PressureIsSeaLevel: true, Northern: true})
	snap, err := engine.Refresh(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		models.Reading{Pressure: sql.NullFloat64{Float64: 1013, Valid: true}}, false)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return snap
}

func TestRedisPublisher_Publish(t *testing.T) {
	fake := &fakeRedis{}
	p := newRedisPublisher(fake, "", 15*time.Minute)
	snap := testSnapshot(t)

	if err := p.Publish(context.Background(), snap); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(fake.sets) != 1 {
		t.Fatalf("sets = %d, want 1", len(fake.sets))
	}
	set := fake.sets[0]
	if set.key != "barocast:snapshot" || set.ttl != 15*time.Minute {
		t.Errorf("set key/ttl = %q/%v", set.key, set.ttl)
	}

	var decoded map[string]any
	if err := json.Unmarshal(set.value, &decoded); err != nil {
		t.Fatalf("stored value is not JSON: %v", err)
	}
	if _, ok := decoded["attributes"]; !ok {
		t.Errorf("stored snapshot missing attributes: %s", set.value)
	}

	if string(fake.published["barocast:updates"]) != string(set.value) {
		t.Error("published message differs from stored snapshot")
	}
}

func TestRedisPublisher_Errors(t *testing.T) {
	snap := testSnapshot(t)

	fake := &fakeRedis{setErr: errors.New("READONLY")}
	p := newRedisPublisher(fake, "home", 0)
	err := p.Publish(context.Background(), snap)
	if err == nil || !strings.Contains(err.Error(), "home:snapshot") {
		t.Errorf("set error = %v", err)
	}
	if fake.published != nil {
		t.Error("published after a failed set")
	}

	fake = &fakeRedis{publishErr: errors.New("connection reset")}
	p = newRedisPublisher(fake, "home", 0)
	if err := p.Publish(context.Background(), snap); err == nil || !strings.Contains(err.Error(), "home:updates") {
		t.Errorf("publish error = %v", err)
	}
}
