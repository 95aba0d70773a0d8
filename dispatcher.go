package main

import (
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/horgh/carbon/config"
	"github.com/horgh/carbon/ircwire"
)

// Bouncer is the dispatcher: the single-threaded event loop owning the
// server and client registries, the name index, and every routing and
// namespace-rewriting decision. It is the sole mutator of servers,
// clients, and names (spec I6); workers touch only their own
// connection's connected/ping_active fields, and the ping worker also
// enqueues its PING lines on its own connection's outbound queue.
type Bouncer struct {
	ownHostmask ircwire.ServerHostmask

	servers []*Server
	clients []*Client
	names   map[string]int

	events chan event
}

// NewBouncer constructs a Bouncer. ownName is the source used on
// synthetic messages sent to clients (welcome, PONG).
func NewBouncer(ownName string) *Bouncer {
	return &Bouncer{
		ownHostmask: ircwire.ServerHostmask{Name: ownName},
		names:       map[string]int{},
		events:      make(chan event, 256),
	}
}

// Start binds the listener, connects every configured upstream, then
// runs the event loop. It returns only on a listener bind failure; the
// event loop otherwise runs forever.
func (b *Bouncer) Start(configs []config.ServerConfig, listenAddr string) error {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", listenAddr, err)
	}
	log.Printf("dispatcher: listening on %s", listenAddr)

	go listenerWorker(ln, b.events)

	for _, cfg := range configs {
		b.startServer(cfg)
	}

	b.run()
	return nil
}

// startServer dials an upstream, and on success spawns its read/send
// workers with the USER/NICK/(PASS) priming lines seeded ahead of
// anything the dispatcher later enqueues (spec §4.5, §5).
func (b *Bouncer) startServer(cfg config.ServerConfig) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	raw, err := net.Dial("tcp", addr)
	if err != nil {
		log.Printf("dispatcher: unable to connect to server %q at %s: %s", cfg.Name, addr, err)
		return
	}

	id := len(b.servers)
	s := newServer(id, cfg, newNetConn(raw))

	s.enqueue(ircwire.NewUser(ircwire.NoneHostmask{}, cfg.Nick, "*", "0", "carbon").Raw)
	s.enqueue(ircwire.NewNick(ircwire.NoneHostmask{}, cfg.Nick).Raw)
	if cfg.Pass != "" {
		s.enqueue(ircwire.NewPass(ircwire.NoneHostmask{}, cfg.Pass).Raw)
	}

	go serverReadWorker(s, b.events)
	go sendWorker(&s.connection, s.netConn, "server")

	b.names[cfg.Name] = id
	b.servers = append(b.servers, s)
	log.Printf("dispatcher: server %q connected as id %d", cfg.Name, id)
}

// run is the dispatcher's event loop: the only goroutine that ever
// touches servers, clients, names, or reaches into a connection's send
// queue from the dispatcher side.
func (b *Bouncer) run() {
	for ev := range b.events {
		switch ev.kind {
		case eventServerRead:
			b.handleServerRead(ev.connID, ev.msg)
		case eventClientRead:
			b.handleClientRead(ev.connID, ev.msg)
		case eventAcceptConn:
			b.handleAcceptConn(ev.conn)
		}
	}
}

// handleServerRead implements spec §4.6.
func (b *Bouncer) handleServerRead(id int, msg ircwire.Message) {
	s := b.servers[id]
	n := s.Name()

	switch cmd := msg.Command.(type) {
	case ircwire.RPLWelcome:
		s.pingOnce.Do(func() { go pingWorker(&s.connection, "server") })

		fields := strings.Fields(cmd.Params)
		if len(fields) > 0 {
			s.SetNick(fields[0])
		}

		for _, ch := range s.Config.Chans {
			s.enqueue(ircwire.NewJoin(ircwire.NoneHostmask{}, ch).Raw)
		}

	case ircwire.Ping:
		s.enqueue(ircwire.NewPong(ircwire.NoneHostmask{}, cmd.Param).Raw)

	case ircwire.Pong:
		s.RegisterPong()

	case ircwire.Join:
		user, ok := msg.Hostmask.(ircwire.UserHostmask)
		if !ok {
			return
		}
		if user.Nick == s.Nick() {
			s.AddChannel(cmd.Chan)
			return
		}
		comp := composite(n, cmd.Chan)
		b.broadcastToInterested(comp, func(c *Client) {
			c.enqueue(ircwire.NewJoin(msg.Hostmask, comp).Raw)
		})

	case ircwire.Part:
		user, ok := msg.Hostmask.(ircwire.UserHostmask)
		if !ok {
			return
		}
		if user.Nick == s.Nick() {
			s.RemoveChannel(cmd.Chan)
			return
		}
		comp := composite(n, cmd.Chan)
		b.broadcastToInterested(comp, func(c *Client) {
			c.enqueue(ircwire.NewPart(msg.Hostmask, comp, cmd.Msg).Raw)
		})

	case ircwire.Quit:
		if _, ok := msg.Hostmask.(ircwire.UserHostmask); !ok {
			return
		}
		comp := composite(n, cmd.Chan)
		b.broadcastToInterested(comp, func(c *Client) {
			c.enqueue(ircwire.NewQuit(msg.Hostmask, comp, cmd.Msg).Raw)
		})

	case ircwire.Privmsg:
		comp := composite(n, cmd.Target)
		b.broadcastToInterested(comp, func(c *Client) {
			c.enqueue(ircwire.NewPrivmsg(msg.Hostmask, comp, cmd.Msg).Raw)
		})

	case ircwire.Notice:
		comp := composite(n, cmd.Target)
		b.broadcastToInterested(comp, func(c *Client) {
			c.enqueue(ircwire.NewNotice(msg.Hostmask, comp, cmd.Msg).Raw)
		})
	}
}

// broadcastToInterested enqueues via fn on every client that has
// composite in its channel set.
func (b *Bouncer) broadcastToInterested(compositeName string, fn func(c *Client)) {
	for _, c := range b.clients {
		if c.HasChannel(compositeName) {
			fn(c)
		}
	}
}

// handleClientRead implements spec §4.7.
func (b *Bouncer) handleClientRead(id int, msg ircwire.Message) {
	c := b.clients[id]

	switch cmd := msg.Command.(type) {
	case ircwire.User:
		c.SetUserdata(cmd.Username, cmd.Realname)
		if c.MarkWelcomedIfNew() {
			b.sendWelcome(c)
		}

	case ircwire.Nick:
		c.SetNick(cmd.Nick)
		if c.MarkWelcomedIfNew() {
			b.sendWelcome(c)
		}

	case ircwire.Ping:
		c.enqueue(ircwire.NewPong(b.ownHostmask, cmd.Param).Raw)

	case ircwire.Pong:
		c.RegisterPong()

	case ircwire.Join:
		for _, name := range strings.Split(cmd.Chan, ",") {
			b.handleClientJoin(c, name)
		}

	case ircwire.Privmsg:
		b.handleClientTarget(c, cmd.Target, cmd.Msg, ircwire.NewPrivmsg)

	case ircwire.Notice:
		b.handleClientTarget(c, cmd.Target, cmd.Msg, ircwire.NewNotice)
	}
}

// handleClientJoin resolves one composite channel name from a client's
// (possibly comma-separated) JOIN and, per spec §4.7, forwards a
// server-local JOIN if needed before echoing the join back to the
// client regardless of whether the server name resolved.
func (b *Bouncer) handleClientJoin(c *Client, compositeName string) {
	serverName, serverChan, ok := decomposite(compositeName)
	if !ok {
		log.Printf("dispatcher: client %d sent malformed composite channel %q", c.ID(), compositeName)
		return
	}

	if sid, known := b.names[serverName]; known {
		s := b.servers[sid]
		if !s.HasChannel(serverChan) {
			s.enqueue(ircwire.NewJoin(ircwire.NoneHostmask{}, serverChan).Raw)
		}
	} else {
		log.Printf("dispatcher: client %d joined unknown server %q", c.ID(), serverName)
	}

	// Recorded regardless of whether the server name resolved: an
	// unresolved join still echoes and still occupies the client's
	// channel set (see DESIGN.md on the unresolved-join open question).
	c.AddChannel(compositeName)

	c.enqueue(ircwire.NewJoin(c.Hostmask(), compositeName).Raw)
}

// handleClientTarget implements the shared PRIVMSG/NOTICE resolution
// logic of spec §4.7.
func (b *Bouncer) handleClientTarget(c *Client, compositeName, msg string, newMsg func(ircwire.Hostmask, string, string) ircwire.Message) {
	serverName, serverChan, ok := decomposite(compositeName)
	if !ok {
		log.Printf("dispatcher: client %d sent malformed composite target %q", c.ID(), compositeName)
		return
	}

	if !c.HasChannel(compositeName) {
		return
	}

	sid, known := b.names[serverName]
	if !known {
		return
	}

	b.servers[sid].enqueue(newMsg(ircwire.NoneHostmask{}, serverChan, msg).Raw)
}

func (b *Bouncer) sendWelcome(c *Client) {
	text := "Welcome to the Internet Relay Network " + ircwire.RenderHostmask(c.Hostmask())
	c.enqueue(ircwire.NewRPLWelcome(b.ownHostmask, c.Nick()+" :"+text).Raw)
}

// handleAcceptConn implements spec §4.8.
func (b *Bouncer) handleAcceptConn(conn net.Conn) {
	id := len(b.clients)
	c := newClient(id, conn, newNetConn(conn))

	go clientReadWorker(c, b.events)
	go sendWorker(&c.connection, c.netConn, "client")
	go pingWorker(&c.connection, "client")

	b.clients = append(b.clients, c)
	log.Printf("dispatcher: client %d accepted from %s", id, conn.RemoteAddr())
}
