package network

import (
	"testing"

	"arena-server/pkg/api"
)

func drain(ch <-chan api.ServerMessage) []api.ServerMessage {
	var out []api.ServerMessage
	for {
		select {
		case m, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestBroadcaster_Routing(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	bb := b.Register("b")
	c := b.Register("c")

	b.SendTo("a", api.NewMessage("one", nil))
	b.SendToMany([]string{"a", "b", "ghost"}, api.NewMessage("two", nil), "a")
	b.Broadcast(api.NewMessage("three", nil))

	if got := drain(a); len(got) != 2 || got[0].Type != "one" || got[1].Type != "three" {
		t.Errorf("a got %v", got)
	}
	if got := drain(bb); len(got) != 2 || got[0].Type != "two" {
		t.Errorf("b got %v", got)
	}
	if got := drain(c); len(got) != 1 || got[0].Type != "three" {
		t.Errorf("c got %v", got)
	}
	if b.SubscriberCount() != 3 {
		t.Errorf("SubscriberCount = %d", b.SubscriberCount())
	}
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("a")
	fresh := b.Register("a")

	if _, ok := <-old; ok {
		t.Error("old channel should be closed")
	}
	b.SendTo("a", api.NewMessage("x", nil))
	if got := drain(fresh); len(got) != 1 {
		t.Errorf("fresh channel got %v", got)
	}

	b.Unregister("a")
	if b.HasSubscriber("a") {
		t.Error("subscriber still present after Unregister")
	}
	b.SendTo("a", api.NewMessage("ignored", nil))
}

func TestBroadcaster_DropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	_ = b.Register("slow")

	for i := 0; i < SubscriberBuffer+10; i++ {
		b.SendTo("slow", api.NewMessage("tick", i))
	}
	if b.Dropped() != 10 {
		t.Errorf("Dropped = %d, want 10", b.Dropped())
	}
}
