// Package ircwire implements the wire codec for the subset of the IRC
// protocol the bouncer understands: parsing a line into a structured
// Message and rendering a Message back to a line.
package ircwire

import "strings"

// Hostmask is the source prefix of a Message. It is one of UserHostmask,
// ServerHostmask, or NoneHostmask.
type Hostmask interface {
	// render returns the wire representation of the hostmask, or "" for
	// NoneHostmask (meaning: omit the source prefix entirely).
	render() string
}

// RenderHostmask returns h's wire representation, for callers outside
// this package that need to embed a hostmask in text (e.g. a welcome
// line) rather than a Message.
func RenderHostmask(h Hostmask) string {
	return h.render()
}

// UserHostmask is a client source: nick!user@host.
type UserHostmask struct {
	Nick string
	User string
	Host string
}

func (h UserHostmask) render() string {
	return h.Nick + "!" + h.User + "@" + h.Host
}

// ServerHostmask is a server source, rendered as a bare name.
type ServerHostmask struct {
	Name string
}

func (h ServerHostmask) render() string {
	return h.Name
}

// NoneHostmask means the message carries no source prefix.
type NoneHostmask struct{}

func (NoneHostmask) render() string {
	return ""
}

// parseHostmask parses a prefix token (with or without its leading ':').
// See splitPrefixParts for the split-on-'!'-and-'@' rule.
func parseHostmask(tok string) Hostmask {
	tok = strings.TrimPrefix(tok, ":")

	parts := splitPrefixParts(tok)
	switch len(parts) {
	case 3:
		return UserHostmask{Nick: parts[0], User: parts[1], Host: parts[2]}
	case 1:
		return ServerHostmask{Name: parts[0]}
	default:
		return ServerHostmask{Name: tok}
	}
}

// splitPrefixParts splits a prefix token on the first '!' and, within the
// remainder, the first '@'. It returns 3 parts for nick!user@host, 1 part
// when neither separator is present, and some other count (2, typically)
// for anything else — callers treat anything but 1 or 3 as "otherwise".
func splitPrefixParts(tok string) []string {
	bang := strings.IndexByte(tok, '!')
	if bang == -1 {
		if at := strings.IndexByte(tok, '@'); at != -1 {
			return []string{tok[:at], tok[at+1:]}
		}
		return []string{tok}
	}

	nick := tok[:bang]
	rest := tok[bang+1:]
	at := strings.IndexByte(rest, '@')
	if at == -1 {
		return []string{nick, rest}
	}
	return []string{nick, rest[:at], rest[at+1:]}
}
