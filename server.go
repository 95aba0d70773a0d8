package main

import (
	"sync"

	"github.com/horgh/carbon/config"
)

// serverUserdata is the identity this bouncer presents to an upstream
// network when registering.
type serverUserdata struct {
	username string
	hostname string
	realname string
}

// Server is an upstream IRC network connection (spec's Server, extending
// Connection with Config and userdata).
type Server struct {
	connection

	Config config.ServerConfig
	data   serverUserdata

	// pingOnce guards against spawning more than one ping worker, in
	// case RPL_WELCOME is somehow observed twice.
	pingOnce sync.Once

	netConn *netConn
}

func newServer(id int, cfg config.ServerConfig, nc *netConn) *Server {
	return &Server{
		connection: newConnection(id, cfg.Name, sendQueueSize),
		Config:     cfg,
		data: serverUserdata{
			username: cfg.Nick,
			realname: "carbon",
		},
		netConn: nc,
	}
}
