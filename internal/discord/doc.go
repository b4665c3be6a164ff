// Package discord exposes the comic commands as a Discord slash command
// group and wires message buttons to the navigator.
package discord
