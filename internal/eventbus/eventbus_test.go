package eventbus

import "testing"

func TestTypedBusPublishSubscribe(t *testing.T) {
	b := NewTyped[int]()
	sub := b.Subscribe()
	b.Publish(42)
	if got := <-sub; got != 42 {
		t.Fatalf("expected 42 got %d", got)
	}
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed after unsubscribe")
	}
}

func TestTypedBusDropsWhenFull(t *testing.T) {
	b := NewTyped[int]()
	sub := b.Subscribe()
	for i := 0; i < 200; i++ {
		b.Publish(i)
	}
	// Buffer is 64; the rest were dropped, not blocked on.
	count := 0
	for {
		select {
		case <-sub:
			count++
			continue
		default:
		}
		break
	}
	if count != 64 {
		t.Fatalf("expected 64 buffered events got %d", count)
	}
}

func TestTypedBusClose(t *testing.T) {
	b := NewTyped[string]()
	sub := b.Subscribe()
	b.Close()
	if _, ok := <-sub; ok {
		t.Fatalf("expected closed channel")
	}
	b.Publish("ignored")
	if ch := b.Subscribe(); ch == nil {
		t.Fatalf("subscribe after close should return a closed channel")
	} else if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after close")
	}
}
