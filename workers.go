package main

import (
	"io"
	"log"
	"strconv"
	"time"

	"github.com/horgh/carbon/ircwire"
)

// pingPeriod is the interval between liveness pings, per spec §4.3/§5.
const pingPeriod = 255 * time.Second

// workerLabel tags a log line with the worker's role and the connection
// it serves, so operational logs can be grepped by connection.
func workerLabel(kind string, connKind string, id int) string {
	return kind + " worker (" + connKind + " " + strconv.Itoa(id) + ")"
}

// serverReadWorker blocks on the upstream socket, parsing each line and
// emitting a ServerRead event. It exits on EOF/error, marking the server
// disconnected.
func serverReadWorker(s *Server, events chan<- event) {
	label := workerLabel("read", "server", s.id)
	for {
		line, err := s.netConn.readLine()
		if err != nil {
			if err != io.EOF {
				log.Printf("%s: read error: %s", label, err)
			}
			s.SetConnected(false)
			return
		}

		events <- event{kind: eventServerRead, connID: s.id, msg: ircwire.Parse(line)}
	}
}

// clientReadWorker is the downstream counterpart of serverReadWorker.
func clientReadWorker(c *Client, events chan<- event) {
	label := workerLabel("read", "client", c.id)
	for {
		line, err := c.netConn.readLine()
		if err != nil {
			if err != io.EOF {
				log.Printf("%s: read error: %s", label, err)
			}
			c.SetConnected(false)
			return
		}

		events <- event{kind: eventClientRead, connID: c.id, msg: ircwire.Parse(line)}
	}
}

// sendWorker drains conn's outbound queue and writes each line to the
// socket. It exits when the connection becomes disconnected or the
// queue is closed — whichever happens first.
func sendWorker(conn *connection, nc *netConn, connKind string) {
	label := workerLabel("send", connKind, conn.id)
	for {
		select {
		case line, ok := <-conn.sendQueue:
			if !ok {
				return
			}
			if err := nc.writeLine(line); err != nil {
				log.Printf("%s: write error: %s", label, err)
				conn.SetConnected(false)
				return
			}
		case <-conn.Done():
			return
		}
	}
}

// pingWorker periodically issues a liveness PING on conn. A PING that is
// still unanswered when the next one would fire marks the connection
// dead and the worker exits (spec §4.2's try_ping state machine, §4.3's
// period, §5's 255s cadence).
func pingWorker(conn *connection, connKind string) {
	label := workerLabel("ping", connKind, conn.id)
	for conn.IsConnected() {
		ok := conn.TryPing(conn.enqueue)
		if !ok {
			log.Printf("%s: ping timeout, marking dead", label)
			return
		}

		select {
		case <-time.After(pingPeriod):
		case <-conn.Done():
			return
		}
	}
}
