// Package main provides the entry point for pak-server.
//
// pak-server issues prefixed API keys over HTTP and checks presented keys
// against stored hashes. It never stores keys itself; callers keep the
// returned hash.
package main
