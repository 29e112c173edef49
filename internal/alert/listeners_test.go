package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/transit-fleet/internal/models"
)

var sample = models.Alert{
	ID:        12,
	VehicleID: 4,
	Kind:      models.AlertRefuel,
	Reason:    "Vehicle needs refuel. Fuel level at 20.0",
	Status:    models.AlertActive,
	CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
}

func TestFormatNotification(t *testing.T) {
	got := FormatNotification(models.AlertRefuel, sample)
	assert.Equal(t, "[Notification] REFUEL: Vehicle 4 - Vehicle needs refuel. Fuel level at 20.0 (Time: 2024-05-01T09:30:00Z)", got)
}

func TestLogListener(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.JSONFormatter{})

	require.NoError(t, NewLogListener(logger).OnAlert(context.Background(), models.AlertRefuel, sample))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, FormatNotification(models.AlertRefuel, sample), entry["msg"])
	assert.Equal(t, "REFUEL", entry["kind"])
	assert.EqualValues(t, 4, entry["vehicle_id"])
}

type fakeToken struct {
	err      error
	finished bool
}

func (t *fakeToken) Wait() bool                     { return t.finished }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.finished }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.finished {
		close(ch)
	}
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakePublisher struct {
	topic   string
	qos     byte
	payload []byte
	token   *fakeToken
}

func (p *fakePublisher) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	p.topic = topic
	p.qos = qos
	p.payload = payload.([]byte)
	return p.token
}

func TestMQTTListener(t *testing.T) {
	t.Run("publishes event", func(t *testing.T) {
		pub := &fakePublisher{token: &fakeToken{finished: true}}
		l := NewMQTTListener(pub, "transit/alerts", 1, time.Second)

		require.NoError(t, l.OnAlert(context.Background(), models.AlertRefuel, sample))

		assert.Equal(t, "transit/alerts/4/REFUEL", pub.topic)
		assert.Equal(t, byte(1), pub.qos)
		var ev Event
		require.NoError(t, json.Unmarshal(pub.payload, &ev))
		_, err := uuid.Parse(ev.EventID)
		assert.NoError(t, err)
		assert.Equal(t, int64(12), ev.AlertID)
		assert.Equal(t, models.AlertRefuel, ev.Kind)
	})

	t.Run("broker error", func(t *testing.T) {
		brokerErr := errors.New("not connected")
		pub := &fakePublisher{token: &fakeToken{finished: true, err: brokerErr}}
		err := NewMQTTListener(pub, "transit/alerts", 0, time.Second).OnAlert(context.Background(), models.AlertRefuel, sample)
		assert.ErrorIs(t, err, brokerErr)
	})

	t.Run("timeout", func(t *testing.T) {
		pub := &fakePublisher{token: &fakeToken{}}
		err := NewMQTTListener(pub, "transit/alerts", 0, time.Millisecond).OnAlert(context.Background(), models.AlertRefuel, sample)
		assert.ErrorContains(t, err, "timed out")
	})
}

func TestRedisListener(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	l := NewRedisListener(client, "fleet:alerts")
	sub := client.Subscribe(ctx, l.Channel(models.AlertRefuel))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, l.OnAlert(ctx, models.AlertRefuel, sample))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fleet:alerts:REFUEL", msg.Channel)
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, int64(4), ev.VehicleID)
	assert.Equal(t, sample.Reason, ev.Reason)
}

func TestRedisListener_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	err := NewRedisListener(client, "fleet:alerts").OnAlert(context.Background(), models.AlertRefuel, sample)
	assert.Error(t, err)
}
