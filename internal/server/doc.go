// Package server implements the real-time dialogue hub: the WebSocket
// transport, the connection hub with broadcast fan-out, and the command
// protocol that mutates the shared dialogue state.
//
// The implementation is organized into specialized files for configuration,
// hub management, clients, the wire protocol, command handling, routing, and
// the traffic simulator to keep the codebase maintainable and testable as
// the project grows.
package server
