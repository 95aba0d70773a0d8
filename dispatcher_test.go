package main

import (
	"testing"

	"github.com/horgh/carbon/config"
	"github.com/horgh/carbon/ircwire"
)

func newTestBouncer() *Bouncer {
	return NewBouncer("carbon")
}

func addTestServer(b *Bouncer, name, nick string, chans []string) *Server {
	cfg := config.ServerConfig{Name: name, Nick: nick, Chans: chans}
	s := newServer(len(b.servers), cfg, nil)
	b.names[name] = s.ID()
	b.servers = append(b.servers, s)
	return s
}

func addTestClient(b *Bouncer) *Client {
	c := &Client{connection: newConnection(len(b.clients), "test-client", 8)}
	b.clients = append(b.clients, c)
	return c
}

func drain(t *testing.T, ch chan string) []string {
	t.Helper()
	var out []string
	for {
		select {
		case line := <-ch:
			out = append(out, line)
		default:
			return out
		}
	}
}

func TestAutojoinOnWelcome(t *testing.T) {
	b := newTestBouncer()
	s := addTestServer(b, "fn", "me", []string{"#rust"})

	b.handleServerRead(s.ID(), ircwire.Parse(":fn.example 001 me :welcome"))

	// The ping worker spawned on welcome may already have queued its
	// first liveness PING; every other outbound line must be the autojoin.
	var got []string
	for _, line := range drain(t, s.sendQueue) {
		if line != "PING :carbon" {
			got = append(got, line)
		}
	}
	if len(got) != 1 || got[0] != "JOIN #rust" {
		t.Fatalf("server outbound (liveness PINGs excluded) = %v, want [JOIN #rust]", got)
	}
	if s.Nick() != "me" {
		t.Fatalf("s.Nick() = %q, want me", s.Nick())
	}
}

func TestForeignJoinEchoedToInterestedClient(t *testing.T) {
	b := newTestBouncer()
	s := addTestServer(b, "fn", "me", nil)
	s.AddChannel("#rust")

	c := addTestClient(b)
	c.AddChannel("#fn#rust")

	b.handleServerRead(s.ID(), ircwire.Parse(":alice!~a@h JOIN #rust"))

	got := drain(t, c.sendQueue)
	if len(got) != 1 || got[0] != ":alice!~a@h JOIN #fn#rust" {
		t.Fatalf("client outbound = %v, want [:alice!~a@h JOIN #fn#rust]", got)
	}
}

func TestSelfJoinIsAbsorbed(t *testing.T) {
	b := newTestBouncer()
	s := addTestServer(b, "fn", "me", nil)
	// The server has already welcomed us as "me".
	s.SetNick("me")
	c := addTestClient(b)
	c.AddChannel("#fn#newchan")

	b.handleServerRead(s.ID(), ircwire.Parse(":me!~m@h JOIN #newchan"))

	if got := drain(t, c.sendQueue); len(got) != 0 {
		t.Fatalf("expected no client traffic, got %v", got)
	}
	if !s.HasChannel("#newchan") {
		t.Fatalf("expected #newchan recorded on the server")
	}
}

func TestClientPrivmsgForwardedToServer(t *testing.T) {
	b := newTestBouncer()
	s := addTestServer(b, "fn", "me", nil)
	c := addTestClient(b)
	c.AddChannel("#fn#rust")

	b.handleClientRead(c.ID(), ircwire.Parse("PRIVMSG #fn#rust :hello"))

	got := drain(t, s.sendQueue)
	if len(got) != 1 || got[0] != "PRIVMSG #rust :hello" {
		t.Fatalf("server outbound = %v, want [PRIVMSG #rust :hello]", got)
	}
	if got := drain(t, c.sendQueue); len(got) != 0 {
		t.Fatalf("expected no client-side echo, got %v", got)
	}
}

func TestServerPingAnswered(t *testing.T) {
	b := newTestBouncer()
	s := addTestServer(b, "fn", "me", nil)

	b.handleServerRead(s.ID(), ircwire.Parse("PING :x"))

	got := drain(t, s.sendQueue)
	if len(got) != 1 || got[0] != "PONG :x" {
		t.Fatalf("server outbound = %v, want [PONG :x]", got)
	}
}

func TestClientRegistrationSendsWelcomeOnce(t *testing.T) {
	b := newTestBouncer()
	c := addTestClient(b)

	b.handleClientRead(c.ID(), ircwire.Parse("NICK bob"))
	if got := drain(t, c.sendQueue); len(got) != 0 {
		t.Fatalf("expected no welcome before USER, got %v", got)
	}

	b.handleClientRead(c.ID(), ircwire.Parse("USER bob * 0 :Bob"))

	got := drain(t, c.sendQueue)
	if len(got) != 1 {
		t.Fatalf("expected exactly one welcome line, got %v", got)
	}
	want := ":carbon 001 bob :Welcome to the Internet Relay Network bob!bob@"
	if len(got[0]) < len(want) || got[0][:len(want)] != want {
		t.Fatalf("welcome = %q, want prefix %q", got[0], want)
	}
}

func TestClientJoinUnknownServerStillEchoesWithoutServerJoin(t *testing.T) {
	b := newTestBouncer()
	s := addTestServer(b, "fn", "me", nil)
	c := addTestClient(b)

	b.handleClientRead(c.ID(), ircwire.Parse("JOIN #unknown#chat"))

	got := drain(t, c.sendQueue)
	if len(got) != 1 {
		t.Fatalf("expected a single echoed JOIN, got %v", got)
	}
	if got := drain(t, s.sendQueue); len(got) != 0 {
		t.Fatalf("expected no server-side JOIN, got %v", got)
	}
	if !c.HasChannel("#unknown#chat") {
		t.Fatalf("expected the composite recorded regardless of resolution")
	}
}
