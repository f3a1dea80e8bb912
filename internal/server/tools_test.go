package server

import "testing"

func TestGetToolDefinitions_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "" {
			t.Error("tool with empty name")
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true
	}
}

func TestGetToolDefinitions_Schemas(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("missing description")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("schema type: got %v, want object", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("schema has no properties map")
			}

			// Every required field must be declared as a property.
			if req, ok := tool.InputSchema["required"].([]string); ok {
				for _, name := range req {
					if _, ok := props[name]; !ok {
						t.Errorf("required field %s not in properties", name)
					}
				}
			}
		})
	}
}

func TestGetToolDefinitions_CoversCatalogue(t *testing.T) {
	// Spot-check that each operation family is represented.
	expected := []string{
		"get_status", "execute_command",
		"get_register", "set_register",
		"read_memory", "write_memory",
		"step_execution", "step_over", "step_out", "run_process", "pause_process",
		"set_breakpoint", "delete_breakpoint",
		"disassemble_at", "get_modules", "analyze_current_location",
		"find_pattern_in_memory", "search_and_replace_pattern", "memory_search",
		"get_symbols",
		"set_label", "get_label", "delete_label", "resolve_label", "get_all_labels",
		"set_comment", "get_comment", "delete_comment", "get_all_comments",
		"stack_push", "stack_pop", "stack_peek",
		"add_function", "get_function_info", "delete_function", "get_all_functions",
		"set_bookmark", "check_bookmark", "delete_bookmark", "get_all_bookmarks",
		"parse_expression", "resolve_api_address", "resolve_label_address",
		"assemble_instruction", "assemble_and_patch",
		"get_cpu_flag", "set_cpu_flag", "get_all_cpu_flags",
	}

	byName := make(map[string]bool)
	for _, tool := range GetToolDefinitions() {
		byName[tool.Name] = true
	}
	for _, name := range expected {
		if !byName[name] {
			t.Errorf("tool missing from catalogue: %s", name)
		}
	}
	if len(expected) != len(GetToolDefinitions()) {
		t.Errorf("catalogue size: got %d, want %d", len(GetToolDefinitions()), len(expected))
	}
}

func TestGetResourceDefinitions(t *testing.T) {
	resources := GetResourceDefinitions()
	if len(resources) != 2 {
		t.Fatalf("resource count: got %d, want 2", len(resources))
	}
	for _, r := range resources {
		if r.URI == "" || r.MIMEType != "text/plain" {
			t.Errorf("bad resource definition: %+v", r)
		}
	}
}

func TestGetPromptDefinitions(t *testing.T) {
	prompts := GetPromptDefinitions()
	if len(prompts) != 3 {
		t.Fatalf("prompt count: got %d, want 3", len(prompts))
	}
	names := map[string]bool{}
	for _, p := range prompts {
		names[p.Name] = true
	}
	for _, want := range []string{"analyze_function", "find_crypto", "trace_execution"} {
		if !names[want] {
			t.Errorf("prompt missing: %s", want)
		}
	}
}
