package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LibraryURI is the resource listing the stored automata.
const LibraryURI = "automata://library"

// SimulateResponse reports the verdict of a run.
type SimulateResponse struct {
	Outcome  domain.Outcome         `json:"outcome" jsonschema_description:"accepted, rejected or unknown"`
	Accepted bool                   `json:"accepted"`
	Rounds   int                    `json:"rounds" jsonschema_description:"Number of expansion rounds"`
	Created  int                    `json:"configurations" jsonschema_description:"Number of configurations created"`
	Trace    []domain.Configuration `json:"trace,omitempty" jsonschema_description:"Path from the initial configuration to the accepting one"`
}

// ConvertResponse carries the determinized automaton.
type ConvertResponse struct {
	Automaton dto.Document `json:"automaton" jsonschema_description:"The equivalent deterministic automaton"`
}

// EqualResponse reports whether two automata are isomorphic.
type EqualResponse struct {
	Equal bool `json:"equal"`
}

// ClosureResponse lists the epsilon-closure of a state.
type ClosureResponse struct {
	Closure []int `json:"closure" jsonschema_description:"State IDs reachable through lambda transitions, ascending"`
}

// Engine defines the operations the MCP server exposes as tools.
type Engine interface {
	Simulate(ctx context.Context, a *domain.Automaton, input string) (*automata.Result, error)
	Convert(a *domain.Automaton) (*domain.Automaton, error)
	Equal(a, b *domain.Automaton) bool
	Closure(a *domain.Automaton, state int) []int
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	store     ports.AutomatonStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. store may be nil, in which
// case tools only accept inline definitions.
func NewServer(engine Engine, store ports.AutomatonStore) *Server {
	s := &Server{
		engine:    engine,
		store:     store,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	s.registerTools()
	if store != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
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

		slog.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const automatonHelp = "Name of a stored automaton, or an inline YAML/JSON definition"

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run an automaton on an input word and report whether it is accepted."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description(automatonHelp)),
		mcp.WithString("input", mcp.Description("The input word (empty when omitted)")),
		mcp.WithBoolean("trace", mcp.Description("Include the accepting path")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	convertTool := mcp.NewTool("convert",
		mcp.WithDescription("Convert a finite automaton into an equivalent deterministic one."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description(automatonHelp)),
		mcp.WithOutputSchema[ConvertResponse](),
	)
	s.mcpServer.AddTool(convertTool, mcp.NewStructuredToolHandler(s.handleConvert))

	equalTool := mcp.NewTool("equal",
		mcp.WithDescription("Check whether two deterministic automata are identical up to state renaming."),
		mcp.WithString("left", mcp.Required(), mcp.Description(automatonHelp)),
		mcp.WithString("right", mcp.Required(), mcp.Description(automatonHelp)),
		mcp.WithOutputSchema[EqualResponse](),
	)
	s.mcpServer.AddTool(equalTool, mcp.NewStructuredToolHandler(s.handleEqual))

	closureTool := mcp.NewTool("closure",
		mcp.WithDescription("List the states reachable from a state through lambda transitions."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description(automatonHelp)),
		mcp.WithNumber("state", mcp.Required(), mcp.Description("State ID")),
		mcp.WithOutputSchema[ClosureResponse](),
	)
	s.mcpServer.AddTool(closureTool, mcp.NewStructuredToolHandler(s.handleClosure))
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	a, err := s.resolve(ctx, args["automaton"])
	if err != nil {
		return SimulateResponse{}, err
	}
	raw, _ := args["input"].(string)
	input, err := sanitize.Input(raw)
	if err != nil {
		slog.Warn("MCP Simulate: Input rejected", "error", err, "size", len(raw))
		return SimulateResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	res, err := s.engine.Simulate(ctx, a, input)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}

	resp := SimulateResponse{
		Outcome:  res.Outcome,
		Accepted: res.Accepted(),
		Rounds:   res.Rounds,
		Created:  res.Created,
	}
	if trace, _ := args["trace"].(bool); trace {
		resp.Trace = res.Trace()
	}
	return resp, nil
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ConvertResponse, error) {
	a, err := s.resolve(ctx, args["automaton"])
	if err != nil {
		return ConvertResponse{}, err
	}
	dfa, err := s.engine.Convert(a)
	if err != nil {
		return ConvertResponse{}, fmt.Errorf("convert failed: %w", err)
	}
	return ConvertResponse{Automaton: dto.FromDomain("", dfa)}, nil
}

func (s *Server) handleEqual(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EqualResponse, error) {
	left, err := s.resolve(ctx, args["left"])
	if err != nil {
		return EqualResponse{}, fmt.Errorf("left: %w", err)
	}
	right, err := s.resolve(ctx, args["right"])
	if err != nil {
		return EqualResponse{}, fmt.Errorf("right: %w", err)
	}
	return EqualResponse{Equal: s.engine.Equal(left, right)}, nil
}

func (s *Server) handleClosure(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ClosureResponse, error) {
	a, err := s.resolve(ctx, args["automaton"])
	if err != nil {
		return ClosureResponse{}, err
	}
	// JSON numbers arrive as float64.
	f, ok := args["state"].(float64)
	if !ok || f != float64(int(f)) {
		return ClosureResponse{}, &domain.ValidationError{Key: "state", Reason: "must be an integer", Value: args["state"]}
	}
	state := int(f)
	if !a.HasState(state) {
		return ClosureResponse{}, &domain.ValidationError{Key: "state", Reason: "unknown state", Value: state}
	}
	return ClosureResponse{Closure: s.engine.Closure(a, state)}, nil
}

// resolve reads an automaton argument. Values that look like a definition
// are decoded inline; anything else is looked up by name.
func (s *Server) resolve(ctx context.Context, arg any) (*domain.Automaton, error) {
	raw, _ := arg.(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &domain.ValidationError{Key: "automaton", Reason: "is required"}
	}

	if strings.ContainsAny(raw, "{\n:") {
		defs, err := file.Decode(strings.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid definition: %w", err)
		}
		if len(defs) != 1 {
			return nil, &domain.ValidationError{Key: "automaton", Reason: "expected exactly one definition", Value: len(defs)}
		}
		return defs[0].Automaton, nil
	}

	a, err := dto.Ref{Name: raw}.Resolve(ctx, s.store)
	if err != nil {
		if errors.Is(err, domain.ErrAutomatonNotFound) {
			slog.Warn("MCP: unknown automaton", "name", raw)
		}
		return nil, err
	}
	return a, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(LibraryURI, "Stored Automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.libraryJSON(ctx)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      LibraryURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) libraryJSON(ctx context.Context) (string, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list automata: %w", err)
	}
	docs := make([]dto.Document, 0, len(names))
	for _, name := range names {
		a, err := s.store.Load(ctx, name)
		if err != nil {
			// Entries may expire between List and Load.
			if errors.Is(err, domain.ErrAutomatonNotFound) {
				continue
			}
			return "", err
		}
		docs = append(docs, dto.FromDomain(name, a))
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
