package ingest

import (
	"encoding/binary"
	"testing"

	"github.com/eclipse/paho.golang/paho"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lambdabear/pressure-monitor/src/config"
)

func testSubscriber(queueSize int) *Subscriber {
	cfg := config.Default()
	cfg.QueueSize = queueSize
	return NewSubscriber(cfg, zap.NewNop())
}

func publish(payload []byte) paho.PublishReceived {
	return paho.PublishReceived{
		Packet: &paho.Publish{Topic: "pressure/data", Payload: payload},
	}
}

func TestOnPublishDecodesAndForwards(t *testing.T) {
	s := testSubscriber(4)

	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, uint32(int32(100000)))
	_, err := s.onPublish(publish(payload))
	require.NoError(t, err)

	select {
	case smp := <-s.Samples():
		require.Equal(t, 100000.0, smp.Value)
		require.False(t, smp.At.IsZero())
	default:
		t.Fatal("no sample on the ingestion channel")
	}
}

func TestOnPublishDropsMalformedPayloads(t *testing.T) {
	s := testSubscriber(4)

	for _, payload := range [][]byte{nil, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		_, err := s.onPublish(publish(payload))
		require.NoError(t, err)
	}

	select {
	case smp := <-s.Samples():
		t.Fatalf("malformed payload produced a sample: %+v", smp)
	default:
	}
}

func TestOfferNeverBlocks(t *testing.T) {
	s := testSubscriber(2)

	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, uint32(int32(7)))
	// push well past the channel capacity; must return promptly every time
	for i := 0; i < 10; i++ {
		_, err := s.onPublish(publish(payload))
		require.NoError(t, err)
	}
	require.Equal(t, uint64(8), s.dropped.Load())

	// the first two made it through, in order
	for i := 0; i < 2; i++ {
		select {
		case smp := <-s.Samples():
			require.Equal(t, 7.0, smp.Value)
		default:
			t.Fatal("expected buffered sample")
		}
	}
}

func TestCloseWithoutConnect(t *testing.T) {
	s := testSubscriber(1)
	s.Close() // must not panic
}
