// Package app contains the vmftool application logic. It defines the App
// struct, its configuration and one method per command, decoupled from the
// command line that builds the configuration.
package app
