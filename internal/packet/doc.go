// Package packet implements the timestamped, type-tagged value that
// crosses every edge of the graph. A Packet shares ownership of its
// payload on copy; the payload itself is treated as immutable once
// placed in a Packet.
package packet
