package main

import (
	"net"
	"sync"

	"github.com/horgh/carbon/ircwire"
)

// clientUserdata is what a downstream client has told us about itself
// during registration.
type clientUserdata struct {
	username string
	realname string
}

// Client is a local, transient client session (spec's Client, extending
// Connection with userdata and a synthetic hostmask built from the peer
// address captured at accept time).
type Client struct {
	connection

	dataMu sync.Mutex
	data   clientUserdata

	peerIP string

	welcomeMu sync.Mutex
	welcomed  bool

	netConn *netConn
}

func newClient(id int, conn net.Conn, nc *netConn) *Client {
	name := conn.RemoteAddr().String()
	return &Client{
		connection: newConnection(id, name, sendQueueSize),
		peerIP:     peerIPFromAddr(conn.RemoteAddr()),
		netConn:    nc,
	}
}

func peerIPFromAddr(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// SetUserdata records the username/realname a client supplied via USER.
func (c *Client) SetUserdata(username, realname string) {
	c.dataMu.Lock()
	c.data.username = username
	c.data.realname = realname
	c.dataMu.Unlock()
}

// Username returns the username supplied via USER, or "" before that.
func (c *Client) Username() string {
	c.dataMu.Lock()
	defer c.dataMu.Unlock()
	return c.data.username
}

// IsRegistered reports whether the client has supplied both NICK and
// USER, per spec's "Registered" glossary entry.
func (c *Client) IsRegistered() bool {
	return c.Nick() != "" && c.Username() != ""
}

// MarkWelcomedIfNew reports true the first time it is called after the
// client becomes registered, and false on every other call. This is how
// the dispatcher decides, from either the USER or the NICK handler,
// whether registration just completed.
func (c *Client) MarkWelcomedIfNew() bool {
	c.welcomeMu.Lock()
	defer c.welcomeMu.Unlock()
	if c.welcomed || !c.IsRegistered() {
		return false
	}
	c.welcomed = true
	return true
}

// Hostmask builds the client's synthetic hostmask: nick!user@peer-ip.
func (c *Client) Hostmask() ircwire.UserHostmask {
	return ircwire.UserHostmask{Nick: c.Nick(), User: c.Username(), Host: c.peerIP}
}
