package debugger

import (
	"context"
	"fmt"
	"strings"
)

// StatusSummary renders the debugger status as human-readable text
// for contexts that want prose rather than a structured result.
func (b *Bridge) StatusSummary(ctx context.Context) string {
	reply, err := b.client.Call(ctx, "/status", nil)
	if err != nil {
		return "Error: " + err.Error()
	}

	field := func(key string, fallback any) any {
		if reply.Kind == ReplyObject {
			if v, ok := reply.Object[key]; ok {
				return v
			}
		}
		return fallback
	}

	return fmt.Sprintf(`Debugger Status:
- Architecture: %v
- Debugging Active: %v
- Process Running: %v
- Plugin Version: %v
`,
		field("arch", "unknown"),
		field("debugging", false),
		field("running", false),
		field("version", "unknown"))
}

// ModulesSummary renders the loaded-module list as human-readable
// text.
func (b *Bridge) ModulesSummary(ctx context.Context) string {
	reply, err := b.client.Call(ctx, "/modules", nil)
	if err != nil {
		return "Error: " + err.Error()
	}
	if reply.Kind != ReplyList || len(reply.List) == 0 {
		return "No modules loaded (process not running?)"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Loaded Modules (%d):\n\n", len(reply.List))
	for _, item := range reply.List {
		mod, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%v\n", mod["name"])
		fmt.Fprintf(&sb, "   Base: %v\n", mod["base"])
		fmt.Fprintf(&sb, "   Size: %v\n", mod["size"])
		fmt.Fprintf(&sb, "   Entry: %v\n", mod["entry"])
		fmt.Fprintf(&sb, "   Path: %v\n\n", mod["path"])
	}
	return sb.String()
}

// Canned task-starter texts. Static guidance only, no backend
// interaction.

// AnalyzeFunctionPrompt returns the starter text for analyzing a
// function in the debugged process.
func AnalyzeFunctionPrompt() string {
	return `I'll help you analyze this function. Let me:
1. Check the current debugging state
2. Get the current instruction pointer (EIP/RIP)
3. Disassemble the function
4. Examine registers and stack

First, let me check the debugger status...`
}

// FindCryptoPrompt returns the starter text for hunting crypto
// patterns in the current module.
func FindCryptoPrompt() string {
	return `I'll search for common crypto patterns. Let me:
1. Get the current module information
2. Search for crypto constants (magic numbers)
3. Look for suspicious loops and XOR operations
4. Check for common crypto function names

Starting analysis...`
}

// TraceExecutionPrompt returns the starter text for setting up
// execution tracing from the current location.
func TraceExecutionPrompt() string {
	return `I'll set up execution tracing. Let me:
1. Get current location
2. Set strategic breakpoints
3. Configure step-through analysis
4. Monitor register changes

Preparing trace...`
}
