// Package mcp exposes the reasoning backends as MCP tools over stdio.
// Backend failures are returned as "Error: <reason>" answer text, never as
// protocol-level errors, so the caller always gets something to read.
package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"multireasoner/internal/backend"
	"multireasoner/internal/files"
	"multireasoner/internal/logging"
	"multireasoner/internal/prompt"
)

// DefaultTimeout bounds each backend call made on behalf of a tool.
var DefaultTimeout = backend.DefaultTimeout

// Server wraps the MCP SDK server and routes tool calls to the backends.
type Server struct {
	MCPServer *sdkmcp.Server

	chatgpt backend.Backend
	gemini  backend.Backend
	// consensus holds the fan-out set in fixed priority order; combined
	// output always lists sections in this order.
	consensus []backend.Backend

	// Timeout for a single backend invocation.
	Timeout time.Duration
}

// NewServer creates the MCP server over the given backends. The consensus
// priority order is the argument order.
func NewServer(chatgpt, gemini backend.Backend) *Server {
	s := &Server{
		chatgpt:   chatgpt,
		gemini:    gemini,
		consensus: []backend.Backend{chatgpt, gemini},
		Timeout:   DefaultTimeout,
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "multireasoner", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "chatgpt",
		Description: "Consult ChatGPT (GPT-5 via Codex) for qualitative reasoning. Optionally pass file paths to include their contents (restricted to safe text-based extensions). Use for brainstorming, analysis, critique, strategic thinking, decision-making, or any non-code reasoning task.",
	}, s.handleChatGPT)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "gemini",
		Description: "Consult Google Gemini for qualitative reasoning. Optionally pass file paths to include their contents (restricted to safe text-based extensions). Use for brainstorming, analysis, critique, strategic thinking, decision-making. Has 1M+ token context window.",
	}, s.handleGemini)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "consensus",
		Description: "Query BOTH ChatGPT and Gemini in parallel and return both responses for comparison. Use when you want multiple perspectives on a reasoning task. Returns responses from both models side-by-side.",
	}, s.handleConsensus)
}

type reasonInput struct {
	ReasoningInput string   `json:"reasoning_input" jsonschema:"the question or topic to reason about"`
	Depth          string   `json:"depth,omitempty" jsonschema:"reasoning depth: low, medium, or high (default high)"`
	Mode           string   `json:"mode,omitempty" jsonschema:"output mode: memo, bullets, questions, or quick (default memo)"`
	Files          []string `json:"files,omitempty" jsonschema:"optional file paths to attach (safe text files only)"`
}

func (s *Server) handleChatGPT(ctx context.Context, _ *sdkmcp.CallToolRequest, input reasonInput) (*sdkmcp.CallToolResult, any, error) {
	return textResult(s.consultOne(ctx, s.chatgpt, input)), nil, nil
}

func (s *Server) handleGemini(ctx context.Context, _ *sdkmcp.CallToolRequest, input reasonInput) (*sdkmcp.CallToolResult, any, error) {
	return textResult(s.consultOne(ctx, s.gemini, input)), nil, nil
}

func (s *Server) handleConsensus(ctx context.Context, _ *sdkmcp.CallToolRequest, input reasonInput) (*sdkmcp.CallToolResult, any, error) {
	req := s.buildRequest(input)
	logging.New("mcp").Info("consensus call", "depth", req.Depth, "backends", len(s.consensus))

	results := backend.FanOut(ctx, s.consensus, req)
	combined, err := backend.Combine(results)
	if err != nil {
		return textResult("Error: " + err.Error()), nil, nil
	}
	return textResult(combined), nil, nil
}

func (s *Server) consultOne(ctx context.Context, b backend.Backend, input reasonInput) string {
	req := s.buildRequest(input)
	logging.New("mcp").Info("tool call", "backend", b.Name(), "depth", req.Depth)

	res := backend.Invoke(ctx, b, req)
	if !res.OK {
		return "Error: " + res.Reason
	}
	return res.Answer
}

// buildRequest resolves attachments and assembles the prompt blob. Defaults:
// depth high, mode memo.
func (s *Server) buildRequest(input reasonInput) backend.Request {
	depth := input.Depth
	if depth == "" {
		depth = backend.DepthHigh
	}
	mode := input.Mode
	if mode == "" {
		mode = prompt.DefaultMode
	}

	blocks, errs := files.Read(input.Files)
	full := prompt.Build(input.ReasoningInput, mode, blocks, errs)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return backend.Request{Prompt: full, Depth: depth, Timeout: timeout}
}

func textResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}
