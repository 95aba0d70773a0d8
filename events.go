package main

import (
	"net"

	"github.com/horgh/carbon/ircwire"
)

// eventKind tags which of the dispatcher's three event shapes an event
// carries, mirroring the teacher's flat Event{Type, ...} style rather
// than a Go interface hierarchy — the dispatcher's event loop is a
// single switch over exactly these three cases.
type eventKind int

const (
	eventServerRead eventKind = iota
	eventClientRead
	eventAcceptConn
)

// event is the single shape carried on the dispatcher's event channel.
// Only the fields relevant to kind are populated.
type event struct {
	kind eventKind

	// ServerRead / ClientRead
	connID int
	msg    ircwire.Message

	// AcceptConn
	conn net.Conn
}
