package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/llm"
)

var (
	ErrToolNotFound        = errors.New("tool not found")
	ErrToolArgumentInvalid = errors.New("invalid tool arguments")
)

// tenantKeys are argument names the model might use for the tenant. They
// are always replaced by the conversation's tenant.
var tenantKeys = []string{"customer_id", "tenant_id"}

// Result is the outcome of one dispatch. Text is always readable by the
// model; Err is set when the call failed.
type Result struct {
	Name string
	Text string
	Err  error
}

// handlerFunc runs a tool with its decoded arguments.
type handlerFunc func(ctx context.Context, customerID uint, args json.RawMessage) (string, error)

// Tool is one registered operation.
type Tool struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
	Mutates     bool

	accepts map[string]bool
	handler handlerFunc
}

// newTool binds a typed handler. The accepted argument set is read from
// the json tags of T.
func newTool[T any](name, description string, params jsonschema.Definition, mutates bool,
	handler func(ctx context.Context, customerID uint, args T) (string, error)) *Tool {
	return &Tool{
		Name:        name,
		Description: description,
		Parameters:  params,
		Mutates:     mutates,
		accepts:     jsonFields(reflect.TypeOf((*T)(nil)).Elem()),
		handler: func(ctx context.Context, customerID uint, raw json.RawMessage) (string, error) {
			var args T
			if err := json.Unmarshal(raw, &args); err != nil {
				return "", fmt.Errorf("%w: %v", ErrToolArgumentInvalid, err)
			}
			return handler(ctx, customerID, args)
		},
	}
}

func jsonFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	if t.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

// Registry maps tool names to handlers over the knowledge store.
type Registry struct {
	tools  map[string]*Tool
	order  []string
	logger zerolog.Logger
}

// NewRegistry builds the built-in catalogue and checks it.
func NewRegistry(store KnowledgeStore, logger zerolog.Logger) (*Registry, error) {
	r := &Registry{
		tools:  make(map[string]*Tool),
		logger: logger.With().Str("component", "tools").Logger(),
	}
	for _, t := range catalogue(store) {
		if err := r.register(t); err != nil {
			return nil, err
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on an inconsistent catalogue.
func MustNewRegistry(store KnowledgeStore, logger zerolog.Logger) *Registry {
	r, err := NewRegistry(store, logger)
	if err != nil {
		panic(fmt.Sprintf("failed to build tool registry: %v", err))
	}
	return r
}

func (r *Registry) register(t *Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if t.handler == nil {
		return fmt.Errorf("handler cannot be nil for tool: %s", t.Name)
	}
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool already registered: %s", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Validate checks that every advertised schema matches its handler: required
// parameters are declared properties and every property is accepted.
func (r *Registry) Validate() error {
	var problems []string
	for _, name := range r.order {
		t := r.tools[name]
		if t.Parameters.Type != jsonschema.Object {
			problems = append(problems, fmt.Sprintf("%s: parameters must be an object schema", name))
		}
		for _, req := range t.Parameters.Required {
			if _, ok := t.Parameters.Properties[req]; !ok {
				problems = append(problems, fmt.Sprintf("%s: required %q is not a declared property", name, req))
			}
		}
		props := make([]string, 0, len(t.Parameters.Properties))
		for prop := range t.Parameters.Properties {
			props = append(props, prop)
		}
		sort.Strings(props)
		for _, prop := range props {
			if !t.accepts[prop] {
				problems = append(problems, fmt.Sprintf("%s: property %q is not accepted by the handler", name, prop))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("tool catalogue is inconsistent: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Definitions returns the schemas to advertise, in registration order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, llm.ToolDefinition{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	return defs
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []*Tool {
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Dispatch runs one tool call for the conversation's tenant. It never
// panics and never returns an empty Text.
func (r *Registry) Dispatch(ctx context.Context, customerID uint, name, arguments string) (res Result) {
	res.Name = name
	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn().Str("tool", name).Msg("unknown tool requested")
		return Result{Name: name, Text: fmt.Sprintf("Error: unknown tool %q", name), Err: ErrToolNotFound}
	}

	args, err := r.prepare(t, customerID, arguments)
	if err != nil {
		return Result{Name: name, Text: fmt.Sprintf("Error: invalid arguments for %s: %v", name, err), Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Str("tool", name).Interface("panic", p).Msg("tool handler panicked")
			res = Result{Name: name, Text: fmt.Sprintf("Error: %s failed unexpectedly", name), Err: fmt.Errorf("tool %s panicked: %v", name, p)}
		}
	}()

	text, err := t.handler(ctx, customerID, args)
	if err != nil {
		r.logger.Warn().Err(err).Str("tool", name).Uint("customer_id", customerID).Msg("tool failed")
		return Result{Name: name, Text: fmt.Sprintf("Error: %s failed: %v", name, err), Err: err}
	}
	if text == "" {
		text = "Done."
	}
	r.logger.Debug().Str("tool", name).Uint("customer_id", customerID).Msg("tool executed")
	return Result{Name: name, Text: text}
}

// prepare parses the model's argument JSON, drops any tenant id the model
// supplied and checks required parameters. Handlers receive customerID
// directly.
func (r *Registry) prepare(t *Tool, customerID uint, arguments string) (json.RawMessage, error) {
	args := map[string]json.RawMessage{}
	if trimmed := strings.TrimSpace(arguments); trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
			return nil, fmt.Errorf("%w: arguments must be a JSON object", ErrToolArgumentInvalid)
		}
	}

	for _, key := range tenantKeys {
		raw, ok := args[key]
		if !ok {
			continue
		}
		var supplied Number
		if err := json.Unmarshal(raw, &supplied); err != nil || uint(supplied) != customerID {
			r.logger.Warn().
				Str("tool", t.Name).
				Str("supplied", string(raw)).
				Uint("customer_id", customerID).
				Msg("model supplied a foreign tenant id, overriding")
		}
		delete(args, key)
	}
	for _, req := range t.Parameters.Required {
		raw, ok := args[req]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: missing required argument %q", ErrToolArgumentInvalid, req)
		}
	}

	out, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolArgumentInvalid, err)
	}
	return out, nil
}
