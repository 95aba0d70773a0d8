package main

import "strings"

// composite builds a client-visible composite channel name from a
// server name and a server-local channel (which must already include
// its leading '#'), per spec §4.6/§6.
func composite(serverName, serverChan string) string {
	return "#" + serverName + serverChan
}

// decomposite splits a composite channel name into its server name and
// server-local channel, per spec §4.7's JOIN-decomposition rule: strip
// the leading '#', then the next '#' in the remainder divides server
// name from server-local channel (the latter keeping its '#').
//
// ok is false for a malformed composite: one with no second '#', or an
// empty server name or server-local channel (spec I2: "well-formed iff
// it contains exactly two '#' characters, the first at position 0").
func decomposite(name string) (serverName, serverChan string, ok bool) {
	if !strings.HasPrefix(name, "#") {
		return "", "", false
	}

	rest := name[1:]
	idx := strings.IndexByte(rest, '#')
	if idx <= 0 || idx == len(rest)-1 {
		return "", "", false
	}

	// Reject a third '#' — I2 requires exactly two.
	if strings.IndexByte(rest[idx+1:], '#') != -1 {
		return "", "", false
	}

	return rest[:idx], rest[idx:], true
}
