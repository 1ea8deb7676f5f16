package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventJobPosted, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.ResourceID)
		return errors.New("first failed")
	})
	d.Subscribe(EventJobPosted, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.ResourceID)
		return nil
	})
	d.Subscribe(EventJobDeleted, func(context.Context, Event) error {
		t.Fatal("unrelated handler invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventJobPosted, ResourceID: "j1"})
	if err == nil || err.Error() != "first failed" {
		t.Fatalf("err = %v", err)
	}
	if len(calls) != 2 || calls[1] != "second:j1" {
		t.Fatalf("calls = %v", calls)
	}
}
