// Package debugger translates typed debugger operations into HTTP
// calls against the x64dbg REST plugin and normalizes the replies.
//
// Two layers:
//
//   - Client: one bounded GET per call against the plugin's base URL.
//     Replies are a tagged variant (JSON object, JSON array, or plain
//     text) because some endpoints answer with bare acknowledgements.
//     Failures are classified into a fixed taxonomy (timeout,
//     connection refused, HTTP status, unexpected) as *CallError.
//
//   - Bridge: one method per exposed operation. Methods validate and
//     clamp inputs, issue the call and reshape the reply into the
//     operation's documented result. They never return an error;
//     failure is folded into the result as an "error" field next to
//     operation-appropriate defaults, so a caller always receives the
//     same structural shape whether the backend said no or the
//     transport fell over.
//
// # Result conventions
//
// Mutating operations fail as {"success": false, "error": ...}. Reads
// echo caller context on failure (register name, address). List
// operations always return a slice: empty when the backend reports no
// items, the backend's slice verbatim otherwise, and a single-element
// slice holding an error record when the call fails or the reply is
// not a sequence. Pattern search failure normalizes to found:false;
// bulk search failure to {"count": 0, "results": []}.
//
// # State
//
// The layer is stateless and idempotent with respect to itself: no
// caching, no retries, no shared mutable state between calls.
// Concurrent invocations are independent; every path is bounded by
// the configured request timeout.
package debugger
