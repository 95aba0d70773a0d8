package ircwire

// Command is the parsed verb and parameters of a Message. It is one of
// the concrete types below; UNDEFINED for any verb this bouncer does not
// recognize.
type Command interface {
	verb() string
}

// RPLWelcome is the 001 numeric.
type RPLWelcome struct {
	Params string
}

func (RPLWelcome) verb() string { return "001" }

// Ping carries a single parameter, rendered without a leading ':'.
type Ping struct {
	Param string
}

func (Ping) verb() string { return "PING" }

// Pong carries a single parameter, rendered without a leading ':'.
type Pong struct {
	Param string
}

func (Pong) verb() string { return "PONG" }

// User is the connection-registration USER command.
type User struct {
	Username   string
	Hostname   string
	Servername string
	Realname   string
}

func (User) verb() string { return "USER" }

// Nick sets a nickname.
type Nick struct {
	Nick string
}

func (Nick) verb() string { return "NICK" }

// Pass carries a connection password.
type Pass struct {
	Pass string
}

func (Pass) verb() string { return "PASS" }

// Join requests to join a channel.
type Join struct {
	Chan string
}

func (Join) verb() string { return "JOIN" }

// Part leaves a channel, with an optional message.
type Part struct {
	Chan string
	Msg  string
}

func (Part) verb() string { return "PART" }

// Quit disconnects, with an optional message.
//
// Chan is a modelling inaccuracy inherited unchanged from the system this
// was distilled from: real QUIT never carries a channel. The dispatcher
// uses it as a convenient carrier for "which server-local channel this
// quit affects" when broadcasting to interested clients; see quit
// handling in dispatcher.go.
type Quit struct {
	Chan string
	Msg  string
}

func (Quit) verb() string { return "QUIT" }

// Privmsg sends a message to a target (channel or nick).
type Privmsg struct {
	Target string
	Msg    string
}

func (Privmsg) verb() string { return "PRIVMSG" }

// Notice sends a notice to a target.
type Notice struct {
	Target string
	Msg    string
}

func (Notice) verb() string { return "NOTICE" }

// Undefined is any verb this bouncer does not recognize or act on.
type Undefined struct {
	Verb string
}

func (Undefined) verb() string { return "UNDEFINED" }
