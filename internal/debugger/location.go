package debugger

import (
	"context"
	"net/url"
)

// AnalyzeCurrentLocation aggregates status, instruction pointer and
// disassembly into one view of where execution currently sits.
//
// Three sequential backend calls, each allowed to fail on its own:
// a status failure short-circuits; a register failure still surfaces
// the status already obtained; missing disassembly fields degrade to
// placeholders once the location itself is known.
func (b *Bridge) AnalyzeCurrentLocation(ctx context.Context) map[string]any {
	statusReply, err := b.client.Call(ctx, "/status", nil)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	status := statusReply.Value()

	// The instruction pointer register is the only arch-conditional
	// piece of the whole surface.
	reg := "rip"
	if statusReply.Kind == ReplyObject {
		if arch, ok := statusReply.Object["arch"].(string); ok && arch == "x32" {
			reg = "eip"
		}
	}

	regReply, err := b.client.Call(ctx, "/register/get", url.Values{"name": {reg}})
	if err != nil {
		return map[string]any{"error": "Could not get current location", "status": status}
	}
	var value string
	if regReply.Kind == ReplyObject {
		value, _ = regReply.Object["value"].(string)
	}
	if value == "" {
		return map[string]any{"error": "Could not get current location", "status": status}
	}

	result := map[string]any{
		"status":           status,
		"location":         value,
		"instruction":      "unknown",
		"instruction_size": 0,
	}

	disasmReply, err := b.client.Call(ctx, "/disasm", url.Values{"addr": {value}})
	if err == nil && disasmReply.Kind == ReplyObject {
		if instr, ok := disasmReply.Object["instruction"]; ok {
			result["instruction"] = instr
		}
		if size, ok := disasmReply.Object["size"]; ok {
			result["instruction_size"] = size
		}
	}
	return result
}
