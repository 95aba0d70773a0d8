package ircharness

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/horgh/carbon/ircwire"
)

// Client is a local IRC client used to drive a harnessed bouncer.
type Client struct {
	conn net.Conn
	rw   *bufio.ReadWriter
}

// Dial connects to addr and returns an unregistered Client.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error dialing %s: %s", addr, err)
	}
	return &Client{
		conn: conn,
		rw:   bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn)),
	}, nil
}

// Register sends NICK then USER and waits for the welcome numeric.
func (c *Client) Register(nick string) error {
	if err := c.WriteLine(ircwire.NewNick(ircwire.NoneHostmask{}, nick).Raw); err != nil {
		return err
	}
	if err := c.WriteLine(ircwire.NewUser(ircwire.NoneHostmask{}, nick, "", "", nick).Raw); err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		msg, err := c.ReadMessage()
		if err != nil {
			return err
		}
		if _, ok := msg.Command.(ircwire.RPLWelcome); ok {
			return nil
		}
	}
	return fmt.Errorf("did not observe welcome within 5 lines")
}

// WriteLine sends a raw wire line.
func (c *Client) WriteLine(line string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return err
	}
	if _, err := c.rw.WriteString(line + "\r\n"); err != nil {
		return err
	}
	return c.rw.Flush()
}

// ReadMessage reads and parses one line, with a short deadline.
func (c *Client) ReadMessage() (ircwire.Message, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return ircwire.Message{}, err
	}
	line, err := c.rw.ReadString('\n')
	if err != nil {
		return ircwire.Message{}, err
	}
	return ircwire.Parse(strings.TrimRight(line, "\r\n")), nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
