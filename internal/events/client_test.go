package events

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
)

type fakeAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (f *fakeAcknowledger) Ack(_ uint64, _ bool) error {
	f.acked++
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, _ bool) error {
	return nil
}

func TestDispatchAcksHandledMessage(t *testing.T) {
	ack := &fakeAcknowledger{}
	body, err := NewChangeMessage(KindSyncCompleted, "").ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got *ChangeMessage
	err = dispatch(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body},
		func(msg *ChangeMessage) error {
			got = msg
			return nil
		})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got == nil || got.Kind != KindSyncCompleted {
		t.Fatalf("handler not invoked with the message, got %+v", got)
	}
	if ack.acked != 1 || ack.nacked != 0 {
		t.Fatalf("expected one ack, got acked=%d nacked=%d", ack.acked, ack.nacked)
	}
}

func TestDispatchRejectsUndecodablePayloadWithoutRequeue(t *testing.T) {
	ack := &fakeAcknowledger{}
	err := dispatch(context.Background(),
		amqp091.Delivery{Acknowledger: ack, Body: []byte("{not json")},
		func(*ChangeMessage) error {
			t.Fatalf("handler must not run for undecodable payloads")
			return nil
		})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if ack.nacked != 1 || ack.requeue {
		t.Fatalf("expected nack without requeue, got nacked=%d requeue=%v", ack.nacked, ack.requeue)
	}
}

func TestDispatchRequeuesOnHandlerFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	body, err := NewChangeMessage(KindTransactionRecorded, "tx-1").ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	err = dispatch(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body},
		func(*ChangeMessage) error {
			return errors.New("store unavailable")
		})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if ack.nacked != 1 || !ack.requeue {
		t.Fatalf("expected nack with requeue, got nacked=%d requeue=%v", ack.nacked, ack.requeue)
	}
}
