package main

import "testing"

func TestTryPingTimeoutMarksDisconnected(t *testing.T) {
	c := newConnection(0, "fn", 8)

	var sent []string
	send := func(line string) { sent = append(sent, line) }

	if ok := c.TryPing(send); !ok {
		t.Fatalf("first TryPing: expected true")
	}
	if !c.IsConnected() {
		t.Fatalf("expected still connected after one outstanding ping")
	}

	if ok := c.TryPing(send); ok {
		t.Fatalf("second TryPing with no intervening pong: expected false")
	}
	if c.IsConnected() {
		t.Fatalf("expected disconnected after unacknowledged second ping")
	}

	if len(sent) != 1 {
		t.Fatalf("expected exactly one PING sent, got %d: %v", len(sent), sent)
	}
}

func TestRegisterPongAllowsNextPing(t *testing.T) {
	c := newConnection(0, "fn", 8)

	send := func(string) {}

	if ok := c.TryPing(send); !ok {
		t.Fatalf("first TryPing: expected true")
	}

	c.RegisterPong()

	if ok := c.TryPing(send); !ok {
		t.Fatalf("TryPing after RegisterPong: expected true")
	}
	if !c.IsConnected() {
		t.Fatalf("expected still connected")
	}
}

func TestChannelSet(t *testing.T) {
	c := newConnection(0, "fn", 8)

	if c.HasChannel("#rust") {
		t.Fatalf("expected no channels initially")
	}

	c.AddChannel("#rust")
	if !c.HasChannel("#rust") {
		t.Fatalf("expected #rust to be joined")
	}

	c.RemoveChannel("#rust")
	if c.HasChannel("#rust") {
		t.Fatalf("expected #rust to be parted")
	}
}
