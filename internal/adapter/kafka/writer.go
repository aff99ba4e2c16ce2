package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/HarvesConsulting/crop-protection/internal/advisor"
	"github.com/HarvesConsulting/crop-protection/internal/config"
)

// Writer publishes computed spray plans to a Kafka topic.
// It implements advisor.PlanPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured plan topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishPlan serializes and publishes a spray plan to the plan topic.
func (w *Writer) PublishPlan(ctx context.Context, plan advisor.PlanResult) error {
	msg, err := serializeToMessage(plan)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a PlanResult into a Kafka message keyed by mode.
func serializeToMessage(plan advisor.PlanResult) (kafkago.Message, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize spray plan: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(plan.Mode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "mode", Value: []byte(plan.Mode)},
			{Key: "generated_at", Value: []byte(plan.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
