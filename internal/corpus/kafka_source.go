package corpus

import (
	"context"
	"io"

	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/config"
	pkgerrors "github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Record-Mapping-Assistant/pkg/kafka"
)

// KafkaSource consumes JSON records from a Kafka topic. Iteration ends after
// maxRecords messages; without a cap a topic never drains, so maxRecords must
// be positive.
type KafkaSource struct {
	cfg        config.KafkaConfig
	maxRecords int
}

// NewKafkaSource creates a Source over the configured topic.
func NewKafkaSource(cfg config.KafkaConfig, maxRecords int) (*KafkaSource, error) {
	if maxRecords <= 0 {
		return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, "kafka source requires a positive max record count")
	}
	return &KafkaSource{cfg: cfg, maxRecords: maxRecords}, nil
}

// Open starts a new bounded consumption of the topic.
func (s *KafkaSource) Open(ctx context.Context) (Iterator, error) {
	return &kafkaIterator{
		ctx:      ctx,
		consumer: kafka.NewConsumer(s.cfg),
		max:      s.maxRecords,
	}, nil
}

type kafkaIterator struct {
	ctx      context.Context
	consumer *kafka.Consumer
	max      int
	count    int
}

func (it *kafkaIterator) Next() (Record, error) {
	if it.count >= it.max {
		return nil, io.EOF
	}
	value, err := it.consumer.Fetch(it.ctx)
	if err != nil {
		if it.ctx.Err() != nil {
			return nil, it.ctx.Err()
		}
		return nil, err
	}
	rec, err := kafka.DecodeJSON[Record](value)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.ErrMalformedInput, "record %d: %v", it.count+1, err)
	}
	it.count++
	return rec, nil
}

func (it *kafkaIterator) Close() error {
	return it.consumer.Close()
}
