package bridge

import (
	"testing"
)

func TestSubmitAssignsEventID(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	id := b.Submit(Request{Kind: RequestReady})
	if id == "" {
		t.Fatalf("expected an assigned event id")
	}

	req := <-b.Requests()
	if req.EventID != id {
		t.Fatalf("expected delivered request to carry %s, got %s", id, req.EventID)
	}
}

func TestSubmitDropsDuplicates(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	b.Submit(Request{EventID: "evt-1", Kind: RequestReady})
	b.Submit(Request{EventID: "evt-1", Kind: RequestReady})

	if got := len(b.requests); got != 1 {
		t.Fatalf("expected duplicate to be dropped, %d requests queued", got)
	}
}

func TestSubmitAfterCloseIsNoop(t *testing.T) {
	t.Parallel()

	b := New()
	b.Close()

	// Must not panic on the closed channel.
	b.Submit(Request{Kind: RequestReady})
	b.Publish(Notification{Kind: NotifyCatalog})
}

func TestPublishDropsStaleWhenFull(t *testing.T) {
	t.Parallel()

	b := New()
	defer b.Close()

	total := notificationBuffer + 1
	for i := 0; i < total; i++ {
		b.Publish(Notification{EventID: eventID(i), Kind: NotifyCatalog})
	}

	first := <-b.Notifications()
	if first.EventID == eventID(0) {
		t.Fatalf("expected the oldest notification to be dropped, got it first")
	}
	if first.EventID != eventID(1) {
		t.Fatalf("expected delivery to resume at the second notification, got %s", first.EventID)
	}
}

func TestPublishConcurrentWithCloseDoesNotPanic(t *testing.T) {
	t.Parallel()

	b := New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 256; i++ {
			b.Publish(Notification{Kind: NotifyCatalog})
			b.Submit(Request{Kind: RequestReady})
		}
	}()

	// Close mid-stream; any send racing the channel close would panic
	// the publisher goroutine and fail the test.
	b.Close()
	<-done
}

func eventID(i int) string {
	return string(rune('a' + i%26)) + "-" + string(rune('0'+i/26))
}
