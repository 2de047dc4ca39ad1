// Package service provides the key service used by the pak server and CLI.
//
// KeyService owns one pak.Generator built from Settings and exposes the
// operations both front ends need: issuing keys, hashing and verifying key
// text, and inspecting a key without revealing its long token. It logs
// keys only in masked form and reports counts through an optional
// Metrics sink.
//
// KeyService is safe for concurrent use.
package service
