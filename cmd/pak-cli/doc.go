// Package main provides the entry point for pak-cli.
//
// pak-cli generates prefixed API keys and checks them against stored
// hashes, either locally or through a running pak-server.
package main
