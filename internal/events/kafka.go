package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"
)

// KafkaNotifier шлет события баланса в топик Kafka. Доставка асинхронная:
// ошибки доставки логируются в фоне и не влияют на операции ядра.
type KafkaNotifier struct {
	producer *kafka.Producer
	topic    string
	l        *logrus.Entry
}

func NewKafkaNotifier(brokers, topic string, l *logrus.Logger) (*KafkaNotifier, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	notifier := &KafkaNotifier{
		producer: producer,
		topic:    topic,
		l: l.WithFields(logrus.Fields{
			"component": "events",
			"topic":     topic,
		}),
	}
	go notifier.watchDeliveryReports()
	return notifier, nil
}

func (k *KafkaNotifier) BalanceChanged(_ context.Context, event BalanceEvent) error {
	payload, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		return fmt.Errorf("marshaling balance event: %w", marshalErr)
	}

	err := k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(strconv.FormatInt(event.OwnerID, 10)),
		Value:          payload,
	}, nil)
	if err != nil {
		return fmt.Errorf("producing balance event: %w", err)
	}
	return nil
}

// watchDeliveryReports читает отчеты о доставке, иначе канал событий
// продюсера переполнится.
func (k *KafkaNotifier) watchDeliveryReports() {
	for ev := range k.producer.Events() {
		msg, ok := ev.(*kafka.Message)
		if !ok {
			continue
		}
		if msg.TopicPartition.Error != nil {
			k.l.WithError(msg.TopicPartition.Error).Error("balance event delivery failed")
		}
	}
}

func (k *KafkaNotifier) Close() {
	k.producer.Flush(5000) //nolint:mnd
	k.producer.Close()
}
