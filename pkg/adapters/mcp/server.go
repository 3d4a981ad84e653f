package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Checker defines what the MCP server needs from the dfacheck core.
type Checker interface {
	Load(ctx context.Context, data []byte, format dfacheck.Format) (*domain.Automaton, error)
	Check(ctx context.Context, data []byte, format dfacheck.Format, word string, mode domain.Mode) (domain.Verdict, error)
}

// CheckArgs are the arguments of the check_word tool.
type CheckArgs struct {
	Machine string `json:"machine"`
	Word    string `json:"word"`
	Format  string `json:"format,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// CheckResult is the structured output of the check_word tool.
type CheckResult struct {
	Answer     string           `json:"answer" jsonschema_description:"yes when the machine is valid and accepts the word, no otherwise"`
	Accepted   bool             `json:"accepted"`
	Mode       domain.Mode      `json:"mode"`
	FinalState string           `json:"final_state,omitempty" jsonschema_description:"State the run ended in (exact mode)"`
	ErrorKind  domain.ErrorKind `json:"error_kind,omitempty" jsonschema_description:"Why the query was rejected without a run"`
	Error      string           `json:"error,omitempty"`
}

// ValidateArgs are the arguments of the validate_machine tool.
type ValidateArgs struct {
	Machine string `json:"machine"`
	Format  string `json:"format,omitempty"`
}

// ValidateResult is the structured output of the validate_machine tool.
type ValidateResult struct {
	Valid     bool             `json:"valid"`
	Report    *dfacheck.Report `json:"report,omitempty"`
	ErrorKind domain.ErrorKind `json:"error_kind,omitempty"`
	Errors    []string         `json:"errors,omitempty"`
}

// Server wraps a Checker and exposes it as an MCP Server.
type Server struct {
	checker   Checker
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(checker Checker) *Server {
	s := &Server{
		checker:   checker,
		mcpServer: server.NewMCPServer("dfacheck-mcp", dfacheck.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx
// is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	checkTool := mcp.NewTool("check_word",
		mcp.WithDescription("Validate a DFA description and report whether it accepts a word. Invalid machines always answer no."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine description")),
		mcp.WithString("word", mcp.Required(), mcp.Description("Query word; '-' is the empty word")),
		mcp.WithString("format", mcp.Description("Description format: text (default), yaml or json")),
		mcp.WithString("mode", mcp.Description("exact (default) or infix")),
		mcp.WithOutputSchema[CheckResult](),
	)
	s.mcpServer.AddTool(checkTool, mcp.NewStructuredToolHandler(s.handleCheck))

	validateTool := mcp.NewTool("validate_machine",
		mcp.WithDescription("Check that a description is a complete deterministic automaton and summarise it."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine description")),
		mcp.WithString("format", mcp.Description("Description format: text (default), yaml or json")),
		mcp.WithOutputSchema[ValidateResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest, args CheckArgs) (CheckResult, error) {
	format, err := dfacheck.ParseFormat(args.Format)
	if err != nil {
		return CheckResult{}, err
	}
	mode, err := domain.ParseMode(args.Mode)
	if err != nil {
		return CheckResult{}, err
	}

	v, err := s.checker.Check(ctx, []byte(args.Machine), format, args.Word, mode)
	res := CheckResult{
		Answer:     v.Answer(),
		Accepted:   v.Accepted,
		Mode:       v.Mode,
		FinalState: v.FinalState,
	}
	if err != nil {
		if domain.Kind(err) == domain.KindInternal {
			return CheckResult{}, fmt.Errorf("check failed: %w", err)
		}
		res.ErrorKind = domain.Kind(err)
		res.Error = err.Error()
	}
	return res, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (ValidateResult, error) {
	format, err := dfacheck.ParseFormat(args.Format)
	if err != nil {
		return ValidateResult{}, err
	}

	a, err := s.checker.Load(ctx, []byte(args.Machine), format)
	if err != nil {
		if !domain.IsValidationError(err) {
			return ValidateResult{}, fmt.Errorf("load failed: %w", err)
		}
		res := ValidateResult{ErrorKind: domain.Kind(err)}
		for _, e := range domain.ValidationErrors(err) {
			res.Errors = append(res.Errors, e.Error())
		}
		return res, nil
	}

	report := dfacheck.Analyze(a)
	return ValidateResult{Valid: true, Report: &report}, nil
}
