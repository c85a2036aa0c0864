// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates global flags, the command name and the command's own flags into
// the application's configuration.
package cli
