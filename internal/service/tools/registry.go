// Package tools holds the closed catalogues of operations the language
// model may invoke. Handlers never raise errors into the orchestration
// loop: every failure is translated into a result payload carrying an
// "error" field so the model can react in natural language.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/llm"
)

// Handler executes one tool call. args is the raw JSON argument object
// produced by the model.
type Handler func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Tool is one catalogue entry.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage // JSON schema for the argument object
	Handler     Handler
}

// Logger is the logging interface the registry needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Registry is a fixed, statically declared tool catalogue for one role.
type Registry struct {
	role   string
	tools  map[string]Tool
	order  []string
	logger Logger
}

// NewRegistry creates an empty catalogue for the given role.
func NewRegistry(role string, logger Logger) *Registry {
	return &Registry{
		role:   role,
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Role returns the role this catalogue serves.
func (r *Registry) Role() string {
	return r.role
}

// register panics on duplicate names; catalogues are assembled once at
// startup and a collision is a programming error.
func (r *Registry) register(t Tool) {
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("tools: duplicate tool %q in %s catalogue", t.Name, r.role))
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
}

// Declarations returns the catalogue in registration order, in the shape
// the model API expects.
func (r *Registry) Declarations() []llm.ToolDecl {
	decls := make([]llm.ToolDecl, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		decls = append(decls, llm.ToolDecl{
			Type: "function",
			Function: llm.FunctionDecl{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return decls
}

// errorPayload is what the model sees when a tool fails.
type errorPayload struct {
	Error string `json:"error"`
}

// Execute runs one tool call and always returns a JSON result string.
// Unknown names and handler failures become error payloads, never Go
// errors; the boolean reports whether the call succeeded.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (string, bool) {
	tool, ok := r.tools[name]
	if !ok {
		r.logger.Warn("Execute: model requested unknown tool %q (%s catalogue)", name, r.role)
		return encode(errorPayload{Error: fmt.Sprintf("unknown tool %q", name)}), false
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		r.logger.Warn("Execute: %s/%s failed: %v", r.role, name, err)
		return encode(errorPayload{Error: err.Error()}), false
	}

	r.logger.Info("Execute: %s/%s ok", r.role, name)
	return encode(result), true
}

func encode(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Tool results are plain structs of strings and numbers; this
		// only fires on a programming error.
		return `{"error":"internal: unencodable tool result"}`
	}
	return string(data)
}

// decodeArgs decodes the model-supplied argument object into a typed
// struct. A nil or empty payload decodes into the zero value.
func decodeArgs(args json.RawMessage, into interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	return nil
}
