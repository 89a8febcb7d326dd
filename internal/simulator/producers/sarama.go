// Package producers holds the Kafka-backed output destination.
package producers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

const (
	producerMaxRetries   = 5
	producerRetryBackoff = 100 * time.Millisecond
	producerNetTimeout   = 30 * time.Second
)

// SaramaProducer publishes every event to the Kafka topic named after
// its stream, synchronously so a failed tick surfaces immediately.
type SaramaProducer struct {
	producer sarama.SyncProducer
}

func newSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = producerMaxRetries
	cfg.Producer.Retry.Backoff = producerRetryBackoff
	cfg.Producer.Return.Successes = true // required by SyncProducer
	cfg.Net.DialTimeout = producerNetTimeout
	cfg.Net.ReadTimeout = producerNetTimeout
	cfg.Net.WriteTimeout = producerNetTimeout
	return cfg
}

func NewSaramaProducer(config *models.Config) (*SaramaProducer, error) {
	brokers := strings.Split(config.KafkaBrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokers, newSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Printf("Kafka producer connected to brokers %v", brokers)
	return &SaramaProducer{producer: producer}, nil
}

func (s *SaramaProducer) WriteMessage(topic string, msg []byte) error {
	_, _, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", topic, err)
	}
	return nil
}

func (s *SaramaProducer) Close() error {
	return s.producer.Close()
}
