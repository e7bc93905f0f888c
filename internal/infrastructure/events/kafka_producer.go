// Package events publica eventos de dominio en Kafka.
package events

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

var jsonMarshal = json.Marshal

const queueSize = 1000

// KafkaWriter subconjunto de *kafka.Writer usado por el productor.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

var _ ports.EventPublisher = (*Producer)(nil)

// Producer encola eventos en un canal con buffer y los escribe en segundo plano.
// Si la cola está llena el evento se descarta con un warning.
type Producer struct {
	writer    KafkaWriter
	events    chan ports.Event
	log       *logger.Logger
	closeChan chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// ProducerConfig conexión al clúster.
type ProducerConfig struct {
	Brokers []string
	Topic   string
	// SetupTimeout tiempo máximo para crear el topic al arrancar.
	SetupTimeout time.Duration
}

// NewProducer crea el topic si no existe (con reintentos) y arranca el bucle de envío.
func NewProducer(cfg ProducerConfig, log *logger.Logger) *Producer {
	log = log.Named("kafka_producer")
	if err := ensureTopic(cfg); err != nil {
		log.Warn().Err(err).Str("topic", cfg.Topic).Msg("no se pudo crear el topic (puede existir ya)")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		Topic:        cfg.Topic,
		RequiredAcks: kafka.RequireOne,
	}
	return newProducer(w, log, queueSize)
}

func newProducer(w KafkaWriter, log *logger.Logger, size int) *Producer {
	p := &Producer{
		writer:    w,
		events:    make(chan ports.Event, size),
		log:       log,
		closeChan: make(chan struct{}),
	}
	p.wg.Add(1)
	go p.eventLoop()
	return p
}

func ensureTopic(cfg ProducerConfig) error {
	timeout := cfg.SetupTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = timeout

	return backoff.Retry(func() error {
		conn, err := kafka.Dial("tcp", cfg.Brokers[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		controller, err := conn.Controller()
		if err != nil {
			return err
		}
		cc, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
		if err != nil {
			return err
		}
		defer cc.Close()

		err = cc.CreateTopics(kafka.TopicConfig{Topic: cfg.Topic, NumPartitions: 3, ReplicationFactor: 1})
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, b)
}

// Publish encola el evento sin bloquear.
func (p *Producer) Publish(_ context.Context, evt ports.Event) {
	select {
	case <-p.closeChan:
		p.log.Warn().Str("event_type", evt.Type).Str("entity_id", evt.EntityID).Msg("productor cerrado, evento descartado")
		return
	default:
	}
	select {
	case p.events <- evt:
	default:
		p.log.Warn().Str("event_type", evt.Type).Str("entity_id", evt.EntityID).Msg("cola de kafka llena, evento descartado")
	}
}

func (p *Producer) eventLoop() {
	defer p.wg.Done()
	for {
		select {
		case evt := <-p.events:
			p.sendEvent(context.Background(), evt)
		case <-p.closeChan:
			// vaciar lo pendiente antes de salir
			for {
				select {
				case evt := <-p.events:
					p.sendEvent(context.Background(), evt)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, evt ports.Event) {
	value, err := jsonMarshal(evt)
	if err != nil {
		p.log.Error().Err(err).Str("event_type", evt.Type).Str("entity_id", evt.EntityID).Msg("no se pudo serializar el evento")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.EntityID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	})
	if err != nil {
		p.log.Error().Err(err).Str("event_type", evt.Type).Str("entity_id", evt.EntityID).Msg("no se pudo publicar el evento")
	}
}

// Close detiene el bucle tras vaciar la cola y cierra el writer.
func (p *Producer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeChan)
		p.wg.Wait()
		if err := p.writer.Close(); err != nil {
			p.log.Error().Err(err).Msg("error cerrando writer de kafka")
		}
	})
}
