package services

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// IKafkaService defines the interface for Kafka operations.
type IKafkaService interface {
	PushMessage(topic, key string, message []byte) error
	Close() error
}

// KafkaService implements IKafkaService using Sarama.
type KafkaService struct {
	producer sarama.SyncProducer
	log      *zap.Logger
}

// NewProducerConfig returns the Sarama settings used by the order event producer.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true // required by SyncProducer
	config.Producer.Timeout = 5 * time.Second
	return config
}

// NewKafkaService connects a sync producer to brokers.
func NewKafkaService(brokers []string, log *zap.Logger) (IKafkaService, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to start Sarama producer: %w", err)
	}

	log.Info("kafka producer connected", zap.Strings("brokers", brokers))
	return NewKafkaServiceWithProducer(producer, log), nil
}

// NewKafkaServiceWithProducer wraps an existing producer.
func NewKafkaServiceWithProducer(producer sarama.SyncProducer, log *zap.Logger) IKafkaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaService{producer: producer, log: log.Named("kafka")}
}

// PushMessage sends a message to the specified Kafka topic.
func (s *KafkaService) PushMessage(topic, key string, message []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(message),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %q: %w", topic, err)
	}
	s.log.Debug("message sent",
		zap.String("topic", topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (s *KafkaService) Close() error {
	return s.producer.Close()
}
