package main

import (
	"log"
	"net"
)

// defaultListenAddr is the bouncer's listening address, per spec §4.4.
const defaultListenAddr = "0.0.0.0:6677"

// listenerWorker accepts inbound TCP connections and emits an
// AcceptConn event for each. Accept errors are logged; the loop
// continues (spec §4.4, §7).
func listenerWorker(ln net.Listener, events chan<- event) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("listener: accept error: %s", err)
			continue
		}

		events <- event{kind: eventAcceptConn, conn: conn}
	}
}
