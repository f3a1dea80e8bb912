// Package server implements the MCP (Model Context Protocol) server
// for the x64dbg bridge.
//
// This package provides a JSON-RPC 2.0 server that exposes debugger
// operations through the MCP protocol, designed to work with Claude
// and other MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list, tools/call: Enumerate and execute debugger tools
//   - resources/list, resources/read: Prose status and module views
//   - prompts/list, prompts/get: Canned task-starter texts
//   - ping: Health check
//
// # Tools
//
// Each tool maps onto one debugger operation (register access, memory
// read/write, breakpoints, disassembly, labels, comments, bookmarks,
// functions, stack, pattern search, assembler, CPU flags). Tool
// execution delegates to the debugger.Bridge, which never fails:
// backend and transport problems are reported inside the result
// payload, so JSON-RPC errors only ever indicate protocol misuse
// (malformed params, unknown tool or method).
//
// # Logging
//
// Diagnostics go to stderr via zap; stdout carries protocol traffic
// only.
package server
