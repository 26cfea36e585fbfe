// Package timeouts defines shared timeout constants used across the
// terminal service. Centralizing these values keeps the durations
// discoverable and prevents drift.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// DecryptReveal is the scripted delay between the "Decrypting file..."
// acknowledgement and the revealed contents.
const DecryptReveal = 1500 * time.Millisecond
