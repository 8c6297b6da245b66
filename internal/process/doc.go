// Package process groups child processes so that a command and everything
// it spawns can be killed together.
package process
