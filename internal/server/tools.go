package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Resource represents an MCP resource definition
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType"`
}

// Prompt represents an MCP prompt definition
type Prompt struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Schema construction helpers. Every tool schema is an object schema
// built from string/integer/boolean properties.

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func stringProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func intProp(desc string, def int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc, "default": def}
}

func requiredIntProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

func boolProp(desc string, def bool) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": desc, "default": def}
}

func noArgs() map[string]interface{} {
	return objectSchema(map[string]interface{}{})
}

const (
	addrDesc  = "Memory address in hex format (e.g., \"0x401000\")"
	startDesc = "Starting address in hex format (e.g., \"0x401000\")"
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Status and raw commands
		{
			Name:        "get_status",
			Description: "Get current debugger status including architecture and process state.",
			InputSchema: noArgs(),
		},
		{
			Name:        "execute_command",
			Description: "Execute a raw x64dbg command (e.g., \"bp main\", \"disasm 0x401000\").",
			InputSchema: objectSchema(map[string]interface{}{
				"cmd": stringProp("Command to execute"),
			}, "cmd"),
		},

		// Register operations
		{
			Name:        "get_register",
			Description: "Get the value of a CPU register in hex format.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Register name (e.g., \"eax\", \"ebx\", \"eip\", \"esp\")"),
			}, "name"),
		},
		{
			Name:        "set_register",
			Description: "Set the value of a CPU register.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":  stringProp("Register name (e.g., \"eax\", \"ebx\")"),
				"value": stringProp("Value to set (hex format, e.g., \"0x1000\", or decimal)"),
			}, "name", "value"),
		},

		// Memory operations
		{
			Name:        "read_memory",
			Description: "Read memory from the debugged process. Returns hex data plus a printable-ASCII rendering.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
				"size": intProp("Number of bytes to read (default: 16, max: 1024)", 16),
			}, "addr"),
		},
		{
			Name:        "write_memory",
			Description: "Write memory to the debugged process.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
				"data": stringProp("Hex string to write (e.g., \"90909090\" for NOPs)"),
			}, "addr", "data"),
		},

		// Execution control
		{
			Name:        "step_execution",
			Description: "Step into the next instruction (single step).",
			InputSchema: noArgs(),
		},
		{
			Name:        "step_over",
			Description: "Step over the next instruction (skip calls).",
			InputSchema: noArgs(),
		},
		{
			Name:        "step_out",
			Description: "Step out of the current function (return to caller).",
			InputSchema: noArgs(),
		},
		{
			Name:        "run_process",
			Description: "Resume execution of the debugged process.",
			InputSchema: noArgs(),
		},
		{
			Name:        "pause_process",
			Description: "Pause execution of the debugged process.",
			InputSchema: noArgs(),
		},

		// Breakpoints
		{
			Name:        "set_breakpoint",
			Description: "Set a breakpoint at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "delete_breakpoint",
			Description: "Delete the breakpoint at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},

		// Disassembly and aggregation
		{
			Name:        "disassemble_at",
			Description: "Disassemble the instruction at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "get_modules",
			Description: "Get the list of all loaded modules in the process (name, base, size, entry, path).",
			InputSchema: noArgs(),
		},
		{
			Name:        "analyze_current_location",
			Description: "Get comprehensive information about the current debugging location: status, current EIP/RIP and its disassembly.",
			InputSchema: noArgs(),
		},

		// Pattern and memory search
		{
			Name:        "find_pattern_in_memory",
			Description: "Search for a byte pattern in memory. Wildcard bytes use backend syntax (e.g., \"48 8B 05 ?? ?? ?? ??\").",
			InputSchema: objectSchema(map[string]interface{}{
				"start_addr": stringProp(startDesc),
				"size":       requiredIntProp("Size of memory region to search"),
				"pattern":    stringProp("Byte pattern to find"),
			}, "start_addr", "size", "pattern"),
		},
		{
			Name:        "search_and_replace_pattern",
			Description: "Search for a byte pattern and replace it with another pattern.",
			InputSchema: objectSchema(map[string]interface{}{
				"start_addr":      stringProp(startDesc),
				"size":            requiredIntProp("Size of memory region to search"),
				"search_pattern":  stringProp("Pattern to search for"),
				"replace_pattern": stringProp("Pattern to replace with"),
			}, "start_addr", "size", "search_pattern", "replace_pattern"),
		},
		{
			Name:        "memory_search",
			Description: "Search for all occurrences of a byte pattern in memory.",
			InputSchema: objectSchema(map[string]interface{}{
				"start_addr":  stringProp(startDesc),
				"size":        requiredIntProp("Size of memory region to search"),
				"pattern":     stringProp("Byte pattern to find"),
				"max_results": intProp("Maximum number of results to return", 100),
			}, "start_addr", "size", "pattern"),
		},

		// Symbols
		{
			Name:        "get_symbols",
			Description: "Get all symbols (functions, imports, exports) from loaded modules.",
			InputSchema: noArgs(),
		},

		// Labels
		{
			Name:        "set_label",
			Description: "Set a label at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr":   stringProp(addrDesc),
				"text":   stringProp("Label text"),
				"manual": boolProp("Whether this is a manual label", true),
			}, "addr", "text"),
		},
		{
			Name:        "get_label",
			Description: "Get the label text at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "delete_label",
			Description: "Delete the label at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "resolve_label",
			Description: "Resolve a label name to its memory address.",
			InputSchema: objectSchema(map[string]interface{}{
				"label": stringProp("Label name to resolve"),
			}, "label"),
		},
		{
			Name:        "get_all_labels",
			Description: "Get all labels in the debugged process.",
			InputSchema: noArgs(),
		},

		// Comments
		{
			Name:        "set_comment",
			Description: "Set a comment at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr":   stringProp(addrDesc),
				"text":   stringProp("Comment text"),
				"manual": boolProp("Whether this is a manual comment", true),
			}, "addr", "text"),
		},
		{
			Name:        "get_comment",
			Description: "Get the comment at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "delete_comment",
			Description: "Delete the comment at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "get_all_comments",
			Description: "Get all comments in the debugged process.",
			InputSchema: noArgs(),
		},

		// Stack operations
		{
			Name:        "stack_push",
			Description: "Push a value onto the stack. Returns the previous stack top.",
			InputSchema: objectSchema(map[string]interface{}{
				"value": stringProp("Value to push in hex format (e.g., \"0x1000\")"),
			}, "value"),
		},
		{
			Name:        "stack_pop",
			Description: "Pop a value from the stack.",
			InputSchema: noArgs(),
		},
		{
			Name:        "stack_peek",
			Description: "Peek at a value on the stack without removing it.",
			InputSchema: objectSchema(map[string]interface{}{
				"offset": intProp("Stack offset (0 = top, 1 = next, etc.)", 0),
			}),
		},

		// Functions
		{
			Name:        "add_function",
			Description: "Define a function over the specified address range.",
			InputSchema: objectSchema(map[string]interface{}{
				"start_addr": stringProp("Function start address in hex format"),
				"end_addr":   stringProp("Function end address in hex format"),
				"manual":     boolProp("Whether this is a manual function definition", true),
			}, "start_addr", "end_addr"),
		},
		{
			Name:        "get_function_info",
			Description: "Get function information (start, end, instruction count) at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "delete_function",
			Description: "Delete the function definition at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "get_all_functions",
			Description: "Get all defined functions in the debugged process.",
			InputSchema: noArgs(),
		},

		// Bookmarks
		{
			Name:        "set_bookmark",
			Description: "Set a bookmark at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr":   stringProp(addrDesc),
				"manual": boolProp("Whether this is a manual bookmark", true),
			}, "addr"),
		},
		{
			Name:        "check_bookmark",
			Description: "Check whether a bookmark exists at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "delete_bookmark",
			Description: "Delete the bookmark at the specified address.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr": stringProp(addrDesc),
			}, "addr"),
		},
		{
			Name:        "get_all_bookmarks",
			Description: "Get all bookmarks in the debugged process.",
			InputSchema: noArgs(),
		},

		// Expression and address resolution
		{
			Name:        "parse_expression",
			Description: "Parse and evaluate a debugger expression (registers, memory, labels; e.g., \"[esp+8]\", \"eax+10\").",
			InputSchema: objectSchema(map[string]interface{}{
				"expression": stringProp("Expression to evaluate"),
			}, "expression"),
		},
		{
			Name:        "resolve_api_address",
			Description: "Get the address of an API function in the debuggee.",
			InputSchema: objectSchema(map[string]interface{}{
				"module":   stringProp("Module name (e.g., \"kernel32.dll\")"),
				"api_name": stringProp("API function name (e.g., \"GetProcAddress\")"),
			}, "module", "api_name"),
		},
		{
			Name:        "resolve_label_address",
			Description: "Resolve a label name to its address.",
			InputSchema: objectSchema(map[string]interface{}{
				"label": stringProp("Label name to resolve"),
			}, "label"),
		},

		// Assembler
		{
			Name:        "assemble_instruction",
			Description: "Assemble an instruction to bytecode without writing to memory.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr":        stringProp("Address context for relative instructions (hex format)"),
				"instruction": stringProp("Assembly instruction to assemble (e.g., \"mov eax, ebx\")"),
			}, "addr", "instruction"),
		},
		{
			Name:        "assemble_and_patch",
			Description: "Assemble an instruction and write it directly to memory.",
			InputSchema: objectSchema(map[string]interface{}{
				"addr":        stringProp("Memory address to write to (hex format)"),
				"instruction": stringProp("Assembly instruction to assemble and write"),
			}, "addr", "instruction"),
		},

		// CPU flags
		{
			Name:        "get_cpu_flag",
			Description: "Get the value of a CPU flag (ZF, OF, CF, PF, SF, TF, AF, DF, IF).",
			InputSchema: objectSchema(map[string]interface{}{
				"flag": stringProp("Flag name (ZF, OF, CF, PF, SF, TF, AF, DF, IF)"),
			}, "flag"),
		},
		{
			Name:        "set_cpu_flag",
			Description: "Set the value of a CPU flag.",
			InputSchema: objectSchema(map[string]interface{}{
				"flag":  stringProp("Flag name (ZF, OF, CF, PF, SF, TF, AF, DF, IF)"),
				"value": boolProp("New flag value", false),
			}, "flag", "value"),
		},
		{
			Name:        "get_all_cpu_flags",
			Description: "Get all CPU flags at once.",
			InputSchema: noArgs(),
		},
	}
}

// GetResourceDefinitions returns the informational read-only views.
func GetResourceDefinitions() []Resource {
	return []Resource{
		{
			URI:         "debugger://status",
			Name:        "Debugger status",
			Description: "Current debugger status and basic information as human-readable text.",
			MIMEType:    "text/plain",
		},
		{
			URI:         "debugger://modules",
			Name:        "Loaded modules",
			Description: "List of all loaded modules in the debugged process as human-readable text.",
			MIMEType:    "text/plain",
		},
	}
}

// GetPromptDefinitions returns the canned task-starter prompts.
func GetPromptDefinitions() []Prompt {
	return []Prompt{
		{
			Name:        "analyze_function",
			Description: "Start analyzing a function in the debugged process",
		},
		{
			Name:        "find_crypto",
			Description: "Look for cryptographic operations in the current module",
		},
		{
			Name:        "trace_execution",
			Description: "Set up execution tracing from current location",
		},
	}
}
