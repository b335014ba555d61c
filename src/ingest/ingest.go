// Package ingest owns the MQTT subscription and the producing side of the
// ingestion channel. The paho client's receive callback decodes payloads and
// hands samples to the render loop; it is the only producer and never touches
// the window buffer or the display surface.
package ingest

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/eclipse/paho.golang/paho"
	"go.uber.org/zap"

	"github.com/lambdabear/pressure-monitor/src/config"
	"github.com/lambdabear/pressure-monitor/src/sample"
)

// Subscriber connects to the broker with the fixed session parameters and
// feeds decoded samples into a buffered channel. Sends never block: when the
// consumer lags far enough for the channel to fill, readings are dropped.
type Subscriber struct {
	cfg     config.Config
	dec     sample.Decoder
	out     chan sample.Sample
	logger  *zap.Logger
	client  *paho.Client
	dropped atomic.Uint64
}

func NewSubscriber(cfg config.Config, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		cfg:    cfg,
		dec:    sample.NewDecoder(cfg.Profile.Format),
		out:    make(chan sample.Sample, cfg.QueueSize),
		logger: logger,
	}
}

// Samples is the consuming side of the ingestion channel.
func (s *Subscriber) Samples() <-chan sample.Sample {
	return s.out
}

// Connect dials the broker, establishes a clean session and subscribes to the
// pressure topic at QoS 0. Any failure here is a startup error; there is no
// reconnect or backoff. Once connected, the client's own goroutines deliver
// publishes to the decode callback until the connection ends.
func (s *Subscriber) Connect(ctx context.Context) error {
	conn, err := net.Dial("tcp", s.cfg.BrokerAddr())
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.cfg.BrokerAddr(), err)
	}
	s.client = paho.NewClient(paho.ClientConfig{
		Conn: conn,
		OnPublishReceived: []func(paho.PublishReceived) (bool, error){
			s.onPublish,
		},
		OnClientError: func(err error) {
			s.logger.Warn("mqtt connection ended", zap.Error(err))
		},
		OnServerDisconnect: func(d *paho.Disconnect) {
			s.logger.Warn("broker disconnected us", zap.Int("reasonCode", int(d.ReasonCode)))
		},
	})
	ca, err := s.client.Connect(ctx, &paho.Connect{
		ClientID:   s.cfg.ClientID,
		KeepAlive:  uint16(s.cfg.KeepAlive / time.Second),
		CleanStart: true,
	})
	if err != nil {
		return fmt.Errorf("mqtt connect %s: %w", s.cfg.BrokerAddr(), err)
	}
	if ca.ReasonCode != 0 {
		return fmt.Errorf("mqtt connect %s: rejected with reason code %d", s.cfg.BrokerAddr(), ca.ReasonCode)
	}
	if _, err := s.client.Subscribe(ctx, &paho.Subscribe{
		Subscriptions: []paho.SubscribeOptions{
			{Topic: s.cfg.Topic, QoS: 0},
		},
	}); err != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", s.cfg.Topic, err)
	}
	return nil
}

// Close tears the MQTT session down. Safe to call when Connect never ran.
func (s *Subscriber) Close() {
	if s.client != nil {
		_ = s.client.Disconnect(&paho.Disconnect{ReasonCode: 0})
	}
}

// onPublish runs on the client's receive goroutine. Payloads with the wrong
// length are dropped without surfacing an error.
func (s *Subscriber) onPublish(pr paho.PublishReceived) (bool, error) {
	v, ok := s.dec.Decode(pr.Packet.Payload)
	if !ok {
		s.logger.Debug("discarding malformed payload",
			zap.Int("length", len(pr.Packet.Payload)),
			zap.String("topic", pr.Packet.Topic),
		)
		return true, nil
	}
	s.offer(sample.Sample{At: time.Now(), Value: v})
	return true, nil
}

// offer hands a sample to the render loop without ever blocking the receive
// goroutine. Drops are counted and surfaced sparsely.
func (s *Subscriber) offer(smp sample.Sample) {
	select {
	case s.out <- smp:
		s.logger.Debug("received sample", zap.Float64("pressure", smp.Value))
	default:
		n := s.dropped.Add(1)
		if n == 1 || n%1000 == 0 {
			s.logger.Warn("ingestion channel full, dropping sample", zap.Uint64("dropped", n))
		}
	}
}
