package server

import (
	"context"
	"encoding/json"
	"fmt"

	"x64dbg-mcp/internal/debugger"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "get_status", "read_memory").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// The bridge itself never fails - backend errors come back inside the
// result payload - so JSON-RPC errors are reserved for protocol
// misuse (malformed params, unknown tool).
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Status and raw commands
	case "get_status":
		return s.bridge.GetStatus(ctx), nil
	case "execute_command":
		return s.handleExecuteCommand(ctx, args)

	// Register operations
	case "get_register":
		return s.handleGetRegister(ctx, args)
	case "set_register":
		return s.handleSetRegister(ctx, args)

	// Memory operations
	case "read_memory":
		return s.handleReadMemory(ctx, args)
	case "write_memory":
		return s.handleWriteMemory(ctx, args)

	// Execution control
	case "step_execution":
		return s.bridge.StepInto(ctx), nil
	case "step_over":
		return s.bridge.StepOver(ctx), nil
	case "step_out":
		return s.bridge.StepOut(ctx), nil
	case "run_process":
		return s.bridge.Run(ctx), nil
	case "pause_process":
		return s.bridge.Pause(ctx), nil

	// Breakpoints
	case "set_breakpoint":
		return s.handleAddrTool(ctx, args, s.bridge.SetBreakpoint)
	case "delete_breakpoint":
		return s.handleAddrTool(ctx, args, s.bridge.DeleteBreakpoint)

	// Disassembly and aggregation
	case "disassemble_at":
		return s.handleAddrTool(ctx, args, s.bridge.Disassemble)
	case "get_modules":
		return s.bridge.GetModules(ctx), nil
	case "analyze_current_location":
		return s.bridge.AnalyzeCurrentLocation(ctx), nil

	// Pattern and memory search
	case "find_pattern_in_memory":
		return s.handleFindPattern(ctx, args)
	case "search_and_replace_pattern":
		return s.handleSearchAndReplace(ctx, args)
	case "memory_search":
		return s.handleMemorySearch(ctx, args)

	// Symbols
	case "get_symbols":
		return s.bridge.GetSymbols(ctx), nil

	// Labels
	case "set_label":
		return s.handleSetLabel(ctx, args)
	case "get_label":
		return s.handleAddrTool(ctx, args, s.bridge.GetLabel)
	case "delete_label":
		return s.handleAddrTool(ctx, args, s.bridge.DeleteLabel)
	case "resolve_label":
		return s.handleLabelTool(ctx, args, s.bridge.ResolveLabel)
	case "get_all_labels":
		return s.bridge.GetAllLabels(ctx), nil

	// Comments
	case "set_comment":
		return s.handleSetComment(ctx, args)
	case "get_comment":
		return s.handleAddrTool(ctx, args, s.bridge.GetComment)
	case "delete_comment":
		return s.handleAddrTool(ctx, args, s.bridge.DeleteComment)
	case "get_all_comments":
		return s.bridge.GetAllComments(ctx), nil

	// Stack operations
	case "stack_push":
		return s.handleStackPush(ctx, args)
	case "stack_pop":
		return s.bridge.StackPop(ctx), nil
	case "stack_peek":
		return s.handleStackPeek(ctx, args)

	// Functions
	case "add_function":
		return s.handleAddFunction(ctx, args)
	case "get_function_info":
		return s.handleAddrTool(ctx, args, s.bridge.GetFunction)
	case "delete_function":
		return s.handleAddrTool(ctx, args, s.bridge.DeleteFunction)
	case "get_all_functions":
		return s.bridge.GetAllFunctions(ctx), nil

	// Bookmarks
	case "set_bookmark":
		return s.handleSetBookmark(ctx, args)
	case "check_bookmark":
		return s.handleAddrTool(ctx, args, s.bridge.CheckBookmark)
	case "delete_bookmark":
		return s.handleAddrTool(ctx, args, s.bridge.DeleteBookmark)
	case "get_all_bookmarks":
		return s.bridge.GetAllBookmarks(ctx), nil

	// Expression and address resolution
	case "parse_expression":
		return s.handleParseExpression(ctx, args)
	case "resolve_api_address":
		return s.handleResolveAPIAddress(ctx, args)
	case "resolve_label_address":
		return s.handleLabelTool(ctx, args, s.bridge.ResolveLabelAddress)

	// Assembler
	case "assemble_instruction":
		return s.handleInstructionTool(ctx, args, s.bridge.AssembleInstruction)
	case "assemble_and_patch":
		return s.handleInstructionTool(ctx, args, s.bridge.AssembleAndPatch)

	// CPU flags
	case "get_cpu_flag":
		return s.handleGetCPUFlag(ctx, args)
	case "set_cpu_flag":
		return s.handleSetCPUFlag(ctx, args)
	case "get_all_cpu_flags":
		return s.bridge.GetAllCPUFlags(ctx), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// handleResourcesRead serves the prose views.
func (s *Server) handleResourcesRead(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	var text string
	switch params.URI {
	case "debugger://status":
		text = s.bridge.StatusSummary(ctx)
	case "debugger://modules":
		text = s.bridge.ModulesSummary(ctx)
	default:
		return s.errorResponse(req.ID, -32602, "Unknown resource", params.URI)
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"contents": []map[string]interface{}{
				{
					"uri":      params.URI,
					"mimeType": "text/plain",
					"text":     text,
				},
			},
		},
	}
}

// handlePromptsGet serves the canned task-starter texts.
func (s *Server) handlePromptsGet(req *MCPRequest) *MCPResponse {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	var text, description string
	switch params.Name {
	case "analyze_function":
		text = debugger.AnalyzeFunctionPrompt()
		description = "Start analyzing a function in the debugged process"
	case "find_crypto":
		text = debugger.FindCryptoPrompt()
		description = "Look for cryptographic operations in the current module"
	case "trace_execution":
		text = debugger.TraceExecutionPrompt()
		description = "Set up execution tracing from current location"
	default:
		return s.errorResponse(req.ID, -32602, "Unknown prompt", params.Name)
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"description": description,
			"messages": []map[string]interface{}{
				{
					"role": "user",
					"content": map[string]interface{}{
						"type": "text",
						"text": text,
					},
				},
			},
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// manualOrDefault applies the catalogue default (true) when the
// caller omitted the manual flag.
func manualOrDefault(manual *bool) bool {
	if manual == nil {
		return true
	}
	return *manual
}

// === Shared argument shapes ===

type addrArgs struct {
	Addr string `json:"addr"`
}

// handleAddrTool covers every tool whose only argument is an address.
func (s *Server) handleAddrTool(ctx context.Context, args json.RawMessage, fn func(context.Context, string) interface{}) (interface{}, error) {
	var a addrArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return fn(ctx, a.Addr), nil
}

type labelArgs struct {
	Label string `json:"label"`
}

func (s *Server) handleLabelTool(ctx context.Context, args json.RawMessage, fn func(context.Context, string) interface{}) (interface{}, error) {
	var a labelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return fn(ctx, a.Label), nil
}

type instructionArgs struct {
	Addr        string `json:"addr"`
	Instruction string `json:"instruction"`
}

func (s *Server) handleInstructionTool(ctx context.Context, args json.RawMessage, fn func(context.Context, string, string) interface{}) (interface{}, error) {
	var a instructionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return fn(ctx, a.Addr, a.Instruction), nil
}

// === Status and raw command handlers ===

type executeCommandArgs struct {
	Cmd string `json:"cmd"`
}

func (s *Server) handleExecuteCommand(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a executeCommandArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.ExecuteCommand(ctx, a.Cmd), nil
}

// === Register handlers ===

type getRegisterArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleGetRegister(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a getRegisterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.GetRegister(ctx, a.Name), nil
}

type setRegisterArgs struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (s *Server) handleSetRegister(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a setRegisterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.SetRegister(ctx, a.Name, a.Value), nil
}

// === Memory handlers ===

type readMemoryArgs struct {
	Addr string `json:"addr"`
	Size int    `json:"size"`
}

func (s *Server) handleReadMemory(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a readMemoryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.ReadMemory(ctx, a.Addr, a.Size), nil
}

type writeMemoryArgs struct {
	Addr string `json:"addr"`
	Data string `json:"data"`
}

func (s *Server) handleWriteMemory(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a writeMemoryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.WriteMemory(ctx, a.Addr, a.Data), nil
}

// === Pattern handlers ===

type findPatternArgs struct {
	StartAddr string `json:"start_addr"`
	Size      int    `json:"size"`
	Pattern   string `json:"pattern"`
}

func (s *Server) handleFindPattern(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a findPatternArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.FindPattern(ctx, a.StartAddr, a.Size, a.Pattern), nil
}

type searchAndReplaceArgs struct {
	StartAddr      string `json:"start_addr"`
	Size           int    `json:"size"`
	SearchPattern  string `json:"search_pattern"`
	ReplacePattern string `json:"replace_pattern"`
}

func (s *Server) handleSearchAndReplace(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a searchAndReplaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.SearchAndReplace(ctx, a.StartAddr, a.Size, a.SearchPattern, a.ReplacePattern), nil
}

type memorySearchArgs struct {
	StartAddr  string `json:"start_addr"`
	Size       int    `json:"size"`
	Pattern    string `json:"pattern"`
	MaxResults int    `json:"max_results"`
}

func (s *Server) handleMemorySearch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a memorySearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.MemorySearch(ctx, a.StartAddr, a.Size, a.Pattern, a.MaxResults), nil
}

// === Label and comment handlers ===

type setLabelArgs struct {
	Addr   string `json:"addr"`
	Text   string `json:"text"`
	Manual *bool  `json:"manual,omitempty"`
}

func (s *Server) handleSetLabel(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a setLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.SetLabel(ctx, a.Addr, a.Text, manualOrDefault(a.Manual)), nil
}

func (s *Server) handleSetComment(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a setLabelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.SetComment(ctx, a.Addr, a.Text, manualOrDefault(a.Manual)), nil
}

// === Stack handlers ===

type stackPushArgs struct {
	Value string `json:"value"`
}

func (s *Server) handleStackPush(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a stackPushArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.StackPush(ctx, a.Value), nil
}

type stackPeekArgs struct {
	Offset int `json:"offset"`
}

func (s *Server) handleStackPeek(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a stackPeekArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.StackPeek(ctx, a.Offset), nil
}

// === Function handlers ===

type addFunctionArgs struct {
	StartAddr string `json:"start_addr"`
	EndAddr   string `json:"end_addr"`
	Manual    *bool  `json:"manual,omitempty"`
}

func (s *Server) handleAddFunction(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a addFunctionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.AddFunction(ctx, a.StartAddr, a.EndAddr, manualOrDefault(a.Manual)), nil
}

// === Bookmark handlers ===

type setBookmarkArgs struct {
	Addr   string `json:"addr"`
	Manual *bool  `json:"manual,omitempty"`
}

func (s *Server) handleSetBookmark(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a setBookmarkArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.SetBookmark(ctx, a.Addr, manualOrDefault(a.Manual)), nil
}

// === Expression and resolution handlers ===

type parseExpressionArgs struct {
	Expression string `json:"expression"`
}

func (s *Server) handleParseExpression(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a parseExpressionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.ParseExpression(ctx, a.Expression), nil
}

type resolveAPIAddressArgs struct {
	Module  string `json:"module"`
	APIName string `json:"api_name"`
}

func (s *Server) handleResolveAPIAddress(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a resolveAPIAddressArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.ResolveAPIAddress(ctx, a.Module, a.APIName), nil
}

// === CPU flag handlers ===

type getCPUFlagArgs struct {
	Flag string `json:"flag"`
}

func (s *Server) handleGetCPUFlag(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a getCPUFlagArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.GetCPUFlag(ctx, a.Flag), nil
}

type setCPUFlagArgs struct {
	Flag  string `json:"flag"`
	Value bool   `json:"value"`
}

func (s *Server) handleSetCPUFlag(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a setCPUFlagArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.bridge.SetCPUFlag(ctx, a.Flag, a.Value), nil
}
