package ircwire

import "strings"

// Message is a parsed or constructed protocol line. Raw is the exact
// wire representation: the original line for a parsed Message, or the
// rendered line for a constructed one.
type Message struct {
	Hostmask Hostmask
	Command  Command
	Raw      string
}

// Parse parses a single wire line (no trailing CRLF; the connection
// abstraction strips that before handing lines to the codec).
//
// Malformed or short lines are not rejected. A line with no verb, or an
// unrecognized verb, comes back as an Undefined command with whatever
// hostmask (and verb) could be recovered; a recognized verb with missing
// arguments comes back as that command with the missing fields empty.
// Callers (the dispatcher) ignore Undefined commands, so a garbled line
// is inert rather than fatal.
func Parse(line string) Message {
	hostmask := Hostmask(NoneHostmask{})
	rest := line

	if strings.HasPrefix(line, ":") {
		if idx := strings.IndexByte(line, ' '); idx != -1 {
			hostmask = parseHostmask(line[:idx])
			rest = line[idx+1:]
		} else {
			hostmask = parseHostmask(line)
			rest = ""
		}
	}

	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return Message{Hostmask: hostmask, Command: Undefined{}, Raw: line}
	}

	verb := strings.ToUpper(tokens[0])
	args := tokens[1:]

	return Message{Hostmask: hostmask, Command: parseCommand(verb, args), Raw: line}
}

func parseCommand(verb string, args []string) Command {
	switch verb {
	case "001":
		return RPLWelcome{Params: strings.Join(args, " ")}
	case "PING":
		return Ping{Param: strings.Join(args, " ")}
	case "PONG":
		return Pong{Param: strings.Join(args, " ")}
	case "USER":
		return parseUser(args)
	case "NICK":
		return Nick{Nick: firstOrEmpty(args)}
	case "PASS":
		return Pass{Pass: firstOrEmpty(args)}
	case "JOIN":
		return Join{Chan: firstOrEmpty(args)}
	case "PART":
		target, msg := parseTargetAndMessage(args)
		return Part{Chan: target, Msg: msg}
	case "QUIT":
		target, msg := parseTargetAndMessage(args)
		return Quit{Chan: target, Msg: msg}
	case "PRIVMSG":
		target, msg := parseTargetAndMessage(args)
		return Privmsg{Target: target, Msg: msg}
	case "NOTICE":
		target, msg := parseTargetAndMessage(args)
		return Notice{Target: target, Msg: msg}
	default:
		return Undefined{Verb: verb}
	}
}

func firstOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// splitOnceColon implements the spec's "remainder joined by space, split
// once at ':', right half is the value (empty if none)" rule.
func splitOnceColon(s string) string {
	idx := strings.IndexByte(s, ':')
	if idx == -1 {
		return ""
	}
	return s[idx+1:]
}

// parseTargetAndMessage handles the common shape shared by PART, QUIT,
// PRIVMSG, and NOTICE: <target> <rest...>, where rest is joined by a
// single space and then split once at ':'.
func parseTargetAndMessage(args []string) (target, msg string) {
	if len(args) == 0 {
		return "", ""
	}
	target = args[0]
	rest := strings.Join(args[1:], " ")
	msg = splitOnceColon(rest)
	return target, msg
}

// parseUser handles USER's fixed-arity prefix (username, hostname,
// servername) followed by a free-form realname after the first ':'.
func parseUser(args []string) Command {
	var username, hostname, servername string
	var rest []string

	switch {
	case len(args) >= 3:
		username, hostname, servername = args[0], args[1], args[2]
		rest = args[3:]
	case len(args) == 2:
		username, hostname = args[0], args[1]
	case len(args) == 1:
		username = args[0]
	}

	realname := splitOnceColon(strings.Join(rest, " "))
	return User{Username: username, Hostname: hostname, Servername: servername, Realname: realname}
}

func render(hostmask Hostmask, verb, args string) string {
	prefix := hostmask.render()
	if prefix == "" {
		return verb + " " + args
	}
	return ":" + prefix + " " + verb + " " + args
}

// NewRPLWelcome constructs a 001 RPL_WELCOME message.
func NewRPLWelcome(hostmask Hostmask, params string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  RPLWelcome{Params: params},
		Raw:      render(hostmask, "001", params),
	}
}

// NewPing constructs a PING message. No colon is inserted before the
// parameter.
func NewPing(hostmask Hostmask, param string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Ping{Param: param},
		Raw:      render(hostmask, "PING", param),
	}
}

// NewPong constructs a PONG message. No colon is inserted before the
// parameter.
func NewPong(hostmask Hostmask, param string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Pong{Param: param},
		Raw:      render(hostmask, "PONG", param),
	}
}

// NewUser constructs a USER message. hostname defaults to "*" and
// servername defaults to "0" when blank.
func NewUser(hostmask Hostmask, username, hostname, servername, realname string) Message {
	if hostname == "" {
		hostname = "*"
	}
	if servername == "" {
		servername = "0"
	}
	args := username + " " + hostname + " " + servername + " :" + realname
	return Message{
		Hostmask: hostmask,
		Command:  User{Username: username, Hostname: hostname, Servername: servername, Realname: realname},
		Raw:      render(hostmask, "USER", args),
	}
}

// NewNick constructs a NICK message.
func NewNick(hostmask Hostmask, nick string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Nick{Nick: nick},
		Raw:      render(hostmask, "NICK", nick),
	}
}

// NewPass constructs a PASS message.
func NewPass(hostmask Hostmask, pass string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Pass{Pass: pass},
		Raw:      render(hostmask, "PASS", pass),
	}
}

// NewJoin constructs a JOIN message.
func NewJoin(hostmask Hostmask, channel string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Join{Chan: channel},
		Raw:      render(hostmask, "JOIN", channel),
	}
}

// NewPart constructs a PART message.
func NewPart(hostmask Hostmask, channel, msg string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Part{Chan: channel, Msg: msg},
		Raw:      render(hostmask, "PART", channel+" :"+msg),
	}
}

// NewQuit constructs a QUIT message.
func NewQuit(hostmask Hostmask, channel, msg string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Quit{Chan: channel, Msg: msg},
		Raw:      render(hostmask, "QUIT", channel+" :"+msg),
	}
}

// NewPrivmsg constructs a PRIVMSG message.
func NewPrivmsg(hostmask Hostmask, target, msg string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Privmsg{Target: target, Msg: msg},
		Raw:      render(hostmask, "PRIVMSG", target+" :"+msg),
	}
}

// NewNotice constructs a NOTICE message.
func NewNotice(hostmask Hostmask, target, msg string) Message {
	return Message{
		Hostmask: hostmask,
		Command:  Notice{Target: target, Msg: msg},
		Raw:      render(hostmask, "NOTICE", target+" :"+msg),
	}
}
