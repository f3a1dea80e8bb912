package debugger

import (
	"context"
	"net/url"
	"strconv"
)

// Bridge exposes one method per debugger operation. Every method
// returns a value instead of an error: transport failures are folded
// into the result as an "error" field (plus operation-appropriate
// defaults), so callers branch on fields, never on error types.
type Bridge struct {
	client *Client
}

// NewBridge wraps a transport client.
func NewBridge(client *Client) *Bridge {
	return &Bridge{client: client}
}

// call issues a backend request and returns the reply's native value.
// On failure it returns a map combining the operation's defaults with
// the error message.
func (b *Bridge) call(ctx context.Context, endpoint string, params url.Values, defaults map[string]any) any {
	reply, err := b.client.Call(ctx, endpoint, params)
	if err != nil {
		res := map[string]any{"error": err.Error()}
		for k, v := range defaults {
			res[k] = v
		}
		return res
	}
	return reply.Value()
}

// callList issues a backend request whose reply is expected to be a
// sequence. Empty backend lists come back as an empty slice; a
// non-sequence reply or a failed call degrades to a single-element
// slice holding an error record, so iterating callers never see a
// scalar.
func (b *Bridge) callList(ctx context.Context, endpoint string) []any {
	reply, err := b.client.Call(ctx, endpoint, nil)
	if err != nil {
		return []any{map[string]any{"error": err.Error()}}
	}
	if reply.Kind != ReplyList {
		return []any{map[string]any{"error": "unexpected reply shape from " + endpoint}}
	}
	if reply.List == nil {
		return []any{}
	}
	return reply.List
}

func boolParam(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// GetStatus reports the debugger state (architecture, whether a
// process is being debugged, whether it is running).
func (b *Bridge) GetStatus(ctx context.Context) any {
	return b.call(ctx, "/status", nil, map[string]any{
		"debugging": false,
		"running":   false,
	})
}

// ExecuteCommand runs a raw debugger command string.
func (b *Bridge) ExecuteCommand(ctx context.Context, cmd string) any {
	return b.call(ctx, "/cmd", url.Values{"cmd": {cmd}}, map[string]any{"success": false})
}

// GetRegister reads a CPU register. The register name is echoed back
// on failure so the caller keeps its context.
func (b *Bridge) GetRegister(ctx context.Context, name string) any {
	return b.call(ctx, "/register/get", url.Values{"name": {name}}, map[string]any{"register": name})
}

// SetRegister writes a CPU register.
func (b *Bridge) SetRegister(ctx context.Context, name, value string) any {
	return b.call(ctx, "/register/set", url.Values{"name": {name}, "value": {value}},
		map[string]any{"success": false})
}

// StepInto executes a single instruction.
func (b *Bridge) StepInto(ctx context.Context) any {
	return b.call(ctx, "/debug/step", nil, map[string]any{"success": false})
}

// StepOver executes the next instruction, skipping over calls.
func (b *Bridge) StepOver(ctx context.Context) any {
	return b.call(ctx, "/debug/stepover", nil, map[string]any{"success": false})
}

// StepOut runs until the current function returns.
func (b *Bridge) StepOut(ctx context.Context) any {
	return b.call(ctx, "/debug/stepout", nil, map[string]any{"success": false})
}

// Run resumes the debugged process.
func (b *Bridge) Run(ctx context.Context) any {
	return b.call(ctx, "/debug/run", nil, map[string]any{"success": false})
}

// Pause suspends the debugged process.
func (b *Bridge) Pause(ctx context.Context) any {
	return b.call(ctx, "/debug/pause", nil, map[string]any{"success": false})
}

// SetBreakpoint places a software breakpoint at addr.
func (b *Bridge) SetBreakpoint(ctx context.Context, addr string) any {
	return b.call(ctx, "/breakpoint/set", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// DeleteBreakpoint removes the breakpoint at addr.
func (b *Bridge) DeleteBreakpoint(ctx context.Context, addr string) any {
	return b.call(ctx, "/breakpoint/delete", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// Disassemble decodes the instruction at addr.
func (b *Bridge) Disassemble(ctx context.Context, addr string) any {
	return b.call(ctx, "/disasm", url.Values{"addr": {addr}}, map[string]any{"address": addr})
}

// GetModules lists the modules loaded in the debugged process.
func (b *Bridge) GetModules(ctx context.Context) []any {
	return b.callList(ctx, "/modules")
}

// GetSymbols lists symbols (functions, imports, exports) from loaded
// modules.
func (b *Bridge) GetSymbols(ctx context.Context) []any {
	return b.callList(ctx, "/symbols/list")
}

// SetLabel attaches a label to addr.
func (b *Bridge) SetLabel(ctx context.Context, addr, text string, manual bool) any {
	return b.call(ctx, "/label/set", url.Values{
		"addr":   {addr},
		"text":   {text},
		"manual": {boolParam(manual)},
	}, map[string]any{"success": false})
}

// GetLabel reads the label at addr.
func (b *Bridge) GetLabel(ctx context.Context, addr string) any {
	return b.call(ctx, "/label/get", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// DeleteLabel removes the label at addr.
func (b *Bridge) DeleteLabel(ctx context.Context, addr string) any {
	return b.call(ctx, "/label/delete", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// ResolveLabel turns a label name into its address.
func (b *Bridge) ResolveLabel(ctx context.Context, label string) any {
	return b.call(ctx, "/label/from_string", url.Values{"label": {label}}, map[string]any{"success": false})
}

// GetAllLabels lists every label in the debugged process.
func (b *Bridge) GetAllLabels(ctx context.Context) []any {
	return b.callList(ctx, "/label/list")
}

// SetComment attaches a comment to addr.
func (b *Bridge) SetComment(ctx context.Context, addr, text string, manual bool) any {
	return b.call(ctx, "/comment/set", url.Values{
		"addr":   {addr},
		"text":   {text},
		"manual": {boolParam(manual)},
	}, map[string]any{"success": false})
}

// GetComment reads the comment at addr.
func (b *Bridge) GetComment(ctx context.Context, addr string) any {
	return b.call(ctx, "/comment/get", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// DeleteComment removes the comment at addr.
func (b *Bridge) DeleteComment(ctx context.Context, addr string) any {
	return b.call(ctx, "/comment/delete", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// GetAllComments lists every comment in the debugged process.
func (b *Bridge) GetAllComments(ctx context.Context) []any {
	return b.callList(ctx, "/comment/list")
}

// StackPush pushes value onto the stack and reports the previous top.
func (b *Bridge) StackPush(ctx context.Context, value string) any {
	return b.call(ctx, "/stack/push", url.Values{"value": {value}}, map[string]any{"success": false})
}

// StackPop pops the top stack value.
func (b *Bridge) StackPop(ctx context.Context) any {
	return b.call(ctx, "/stack/pop", nil, map[string]any{"success": false})
}

// StackPeek reads the stack value at offset without removing it
// (0 = top, 1 = next, ...).
func (b *Bridge) StackPeek(ctx context.Context, offset int) any {
	return b.call(ctx, "/stack/peek", url.Values{"offset": {strconv.Itoa(offset)}},
		map[string]any{"success": false})
}

// AddFunction defines a function spanning [start, end].
func (b *Bridge) AddFunction(ctx context.Context, start, end string, manual bool) any {
	return b.call(ctx, "/function/add", url.Values{
		"start":  {start},
		"end":    {end},
		"manual": {boolParam(manual)},
	}, map[string]any{"success": false})
}

// GetFunction reads function information at addr.
func (b *Bridge) GetFunction(ctx context.Context, addr string) any {
	return b.call(ctx, "/function/get", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// DeleteFunction removes the function definition at addr.
func (b *Bridge) DeleteFunction(ctx context.Context, addr string) any {
	return b.call(ctx, "/function/delete", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// GetAllFunctions lists every defined function.
func (b *Bridge) GetAllFunctions(ctx context.Context) []any {
	return b.callList(ctx, "/function/list")
}

// SetBookmark places a bookmark at addr.
func (b *Bridge) SetBookmark(ctx context.Context, addr string, manual bool) any {
	return b.call(ctx, "/bookmark/set", url.Values{
		"addr":   {addr},
		"manual": {boolParam(manual)},
	}, map[string]any{"success": false})
}

// CheckBookmark reports whether a bookmark exists at addr.
func (b *Bridge) CheckBookmark(ctx context.Context, addr string) any {
	return b.call(ctx, "/bookmark/get", url.Values{"addr": {addr}}, map[string]any{"exists": false})
}

// DeleteBookmark removes the bookmark at addr.
func (b *Bridge) DeleteBookmark(ctx context.Context, addr string) any {
	return b.call(ctx, "/bookmark/delete", url.Values{"addr": {addr}}, map[string]any{"success": false})
}

// GetAllBookmarks lists every bookmark.
func (b *Bridge) GetAllBookmarks(ctx context.Context) []any {
	return b.callList(ctx, "/bookmark/list")
}

// ParseExpression evaluates a debugger expression such as "[esp+8]"
// or "eax+10".
func (b *Bridge) ParseExpression(ctx context.Context, expr string) any {
	return b.call(ctx, "/misc/parse_expression", url.Values{"expr": {expr}},
		map[string]any{"success": false})
}

// ResolveAPIAddress looks up the address of an API function in the
// debuggee, e.g. kernel32.dll!GetProcAddress.
func (b *Bridge) ResolveAPIAddress(ctx context.Context, module, api string) any {
	return b.call(ctx, "/misc/get_proc_address", url.Values{
		"module": {module},
		"api":    {api},
	}, map[string]any{"success": false})
}

// ResolveLabelAddress resolves a label name to its address.
func (b *Bridge) ResolveLabelAddress(ctx context.Context, label string) any {
	return b.call(ctx, "/misc/resolve_label", url.Values{"label": {label}},
		map[string]any{"success": false})
}

// AssembleInstruction assembles an instruction to bytes without
// touching process memory. addr only provides context for relative
// operands.
func (b *Bridge) AssembleInstruction(ctx context.Context, addr, instruction string) any {
	return b.call(ctx, "/assembler/assemble", url.Values{
		"addr":        {addr},
		"instruction": {instruction},
	}, map[string]any{"success": false})
}

// AssembleAndPatch assembles an instruction and writes it to memory
// at addr.
func (b *Bridge) AssembleAndPatch(ctx context.Context, addr, instruction string) any {
	return b.call(ctx, "/assembler/assemble_mem", url.Values{
		"addr":        {addr},
		"instruction": {instruction},
	}, map[string]any{"success": false})
}

// GetCPUFlag reads one CPU flag (ZF, OF, CF, PF, SF, TF, AF, DF, IF).
func (b *Bridge) GetCPUFlag(ctx context.Context, flag string) any {
	return b.call(ctx, "/flag/get", url.Values{"flag": {flag}}, nil)
}

// SetCPUFlag writes one CPU flag.
func (b *Bridge) SetCPUFlag(ctx context.Context, flag string, value bool) any {
	return b.call(ctx, "/flag/set", url.Values{
		"flag":  {flag},
		"value": {boolParam(value)},
	}, map[string]any{"success": false})
}

// GetAllCPUFlags reads all CPU flags in one call.
func (b *Bridge) GetAllCPUFlags(ctx context.Context) any {
	return b.call(ctx, "/flags/get_all", nil, nil)
}
