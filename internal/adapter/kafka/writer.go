// Package kafka publishes resolved markers to a sink topic so downstream
// consumers (search indexers, notification services) can track annotation
// changes. Publishing is feature-flagged; the core never depends on it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/band-atlas/internal/config"
	"github.com/couchcryptid/band-atlas/internal/domain"
	"github.com/couchcryptid/band-atlas/internal/store"
)

// Writer produces marker messages to a Kafka topic.
// It implements the http adapter's MarkerPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishMarkers serializes and publishes every marker of a rebuilt snapshot
// in a single WriteMessages call for efficiency.
func (w *Writer) PublishMarkers(ctx context.Context, snap store.Snapshot) error {
	if len(snap.Markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Markers))
	for i := range snap.Markers {
		msg, err := serializeToMessage(snap.Markers[i], snap.Version, snap.BuiltAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a marker into a Kafka message. The key is the
// location identity (rounded coordinates plus label) so log-compacted topics
// keep the latest classification per location.
func serializeToMessage(m domain.Marker, version uint64, builtAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	key := fmt.Sprintf("%.6f|%.6f|%s", m.Lat, m.Lon, m.Label)
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(m.Category)},
			{Key: "snapshot_version", Value: []byte(strconv.FormatUint(version, 10))},
			{Key: "built_at", Value: []byte(builtAt.Format(time.RFC3339))},
		},
	}, nil
}
