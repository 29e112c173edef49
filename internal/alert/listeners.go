package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/models"
)

// FormatNotification renders the one-line operator notification for a.
func FormatNotification(kind models.AlertKind, a models.Alert) string {
	return fmt.Sprintf("[Notification] %s: Vehicle %d - %s (Time: %s)",
		kind, a.VehicleID, a.Reason, a.CreatedAt.Format(time.RFC3339))
}

// LogListener writes every notification to a logrus logger.
type LogListener struct {
	Logger log.FieldLogger
}

func NewLogListener(logger log.FieldLogger) *LogListener {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogListener{Logger: logger}
}

func (l *LogListener) OnAlert(_ context.Context, kind models.AlertKind, a models.Alert) error {
	l.Logger.WithFields(log.Fields{
		"alert_id":   a.ID,
		"vehicle_id": a.VehicleID,
		"kind":       kind,
		"status":     a.Status,
	}).Info(FormatNotification(kind, a))
	return nil
}

// Event is the payload published to brokers for every notification.
type Event struct {
	EventID     string             `json:"event_id"`
	Kind        models.AlertKind   `json:"kind"`
	AlertID     int64              `json:"alert_id"`
	VehicleID   int64              `json:"vehicle_id"`
	Reason      string             `json:"reason"`
	Status      models.AlertStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	PublishedAt time.Time          `json:"published_at"`
}

func newEvent(kind models.AlertKind, a models.Alert) Event {
	return Event{
		EventID:     uuid.NewString(),
		Kind:        kind,
		AlertID:     a.ID,
		VehicleID:   a.VehicleID,
		Reason:      a.Reason,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		PublishedAt: time.Now().UTC(),
	}
}

// Publisher is the part of mqtt.Client the MQTT listener uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTListener publishes alerts to "<prefix>/<vehicle id>/<kind>".
type MQTTListener struct {
	client  Publisher
	prefix  string
	qos     byte
	timeout time.Duration
}

func NewMQTTListener(client Publisher, prefix string, qos byte, timeout time.Duration) *MQTTListener {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MQTTListener{client: client, prefix: prefix, qos: qos, timeout: timeout}
}

// Topic returns the topic an alert for vehicleID of kind is published on.
func (l *MQTTListener) Topic(vehicleID int64, kind models.AlertKind) string {
	return fmt.Sprintf("%s/%d/%s", l.prefix, vehicleID, kind)
}

func (l *MQTTListener) OnAlert(_ context.Context, kind models.AlertKind, a models.Alert) error {
	payload, err := json.Marshal(newEvent(kind, a))
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}
	token := l.client.Publish(l.Topic(a.VehicleID, kind), l.qos, false, payload)
	if !token.WaitTimeout(l.timeout) {
		return fmt.Errorf("mqtt publish alert %d: timed out after %s", a.ID, l.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish alert %d: %w", a.ID, err)
	}
	return nil
}

// ConnectMQTT connects to broker and returns the ready client.
func ConnectMQTT(broker, clientID string, timeout time.Duration) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(timeout)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}
	return client, nil
}

// RedisListener publishes alerts on "<channel>:<kind>" Redis pub/sub channels.
type RedisListener struct {
	client  redis.UniversalClient
	channel string
}

func NewRedisListener(client redis.UniversalClient, channel string) *RedisListener {
	return &RedisListener{client: client, channel: channel}
}

// Channel returns the pub/sub channel for alerts of kind.
func (l *RedisListener) Channel(kind models.AlertKind) string {
	return fmt.Sprintf("%s:%s", l.channel, kind)
}

func (l *RedisListener) OnAlert(ctx context.Context, kind models.AlertKind, a models.Alert) error {
	payload, err := json.Marshal(newEvent(kind, a))
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}
	if err := l.client.Publish(ctx, l.Channel(kind), payload).Err(); err != nil {
		return fmt.Errorf("redis publish alert %d: %w", a.ID, err)
	}
	return nil
}

var (
	_ Listener = (*LogListener)(nil)
	_ Listener = (*MQTTListener)(nil)
	_ Listener = (*RedisListener)(nil)
)
