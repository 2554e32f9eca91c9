// Package orchestrator runs the conversation loop between an inbound
// sender, the language model and the tool catalogue of one role. Two
// instances exist at runtime (customer and operator) with disjoint
// prompts, catalogues and histories.
//
// The loop never returns an error to the transport: every failure mode
// collapses into a sendable reply. Tool results arrive here already
// minimized by the registry (no QR payloads, projected manifests), so
// nothing sensitive enters model-visible history.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/llm"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/tools"
)

// fallbackReply is sent when the model is unreachable or the round
// budget runs out without final text.
const fallbackReply = "Sorry, I could not finish handling that request. Please try again in a moment."

// clockAnnotation gives the model wall-clock context on every user turn.
const clockAnnotation = "Mon, 02 Jan 2006 15:04 MST"

// LLMClient is the model collaborator.
type LLMClient interface {
	Complete(ctx context.Context, system string, history []llm.Message, tools []llm.ToolDecl) (*llm.Completion, error)
}

// Logger is the logging interface the orchestrator needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder counts model calls and tool rounds. Nil disables it.
type MetricsRecorder interface {
	RecordToolInvocation(role, tool, outcome string)
	RecordLLMCall(role, outcome string)
	RecordToolRounds(rounds int)
}

// Config bounds one orchestrator instance.
type Config struct {
	MaxToolRounds int // 0 means domain.DefaultMaxToolRounds
	HistoryLimit  int // 0 means domain.DefaultHistoryLimit
}

// Orchestrator drives conversations for one role.
type Orchestrator struct {
	registry     *tools.Registry
	client       LLMClient
	systemPrompt string
	maxRounds    int
	historyLimit int
	logger       Logger
	metrics      MetricsRecorder
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// session is one sender's conversation state. Its lock serializes
// concurrent messages from the same sender.
type session struct {
	mu      sync.Mutex
	history []llm.Message
}

// New creates an orchestrator for one role. metrics may be nil.
func New(registry *tools.Registry, client LLMClient, systemPrompt string, cfg Config, logger Logger, metrics MetricsRecorder) *Orchestrator {
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = domain.DefaultMaxToolRounds
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = domain.DefaultHistoryLimit
	}
	return &Orchestrator{
		registry:     registry,
		client:       client,
		systemPrompt: systemPrompt,
		maxRounds:    cfg.MaxToolRounds,
		historyLimit: cfg.HistoryLimit,
		logger:       logger,
		metrics:      metrics,
		now:          time.Now,
	}
}

// WithClock overrides the wall clock. Test use.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// HandleMessage processes one inbound message and always returns a
// sendable reply. Messages from the same sender are handled one at a
// time; distinct senders proceed in parallel.
func (o *Orchestrator) HandleMessage(ctx context.Context, senderID, text string) string {
	sess := o.session(senderID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = append(sess.history, llm.Message{
		Role:    llm.RoleUser,
		Content: fmt.Sprintf("[%s] %s", o.now().Format(clockAnnotation), text),
	})

	reply := o.runLoop(ctx, senderID, sess)

	sess.history = append(sess.history, llm.Message{
		Role:    llm.RoleAssistant,
		Content: reply,
	})
	sess.history = trimHistory(sess.history, o.historyLimit)
	return reply
}

// runLoop talks to the model until it produces final text or the round
// budget is spent.
func (o *Orchestrator) runLoop(ctx context.Context, senderID string, sess *session) string {
	role := o.registry.Role()
	decls := o.registry.Declarations()
	lastText := ""

	rounds := 0
	defer func() {
		if o.metrics != nil {
			o.metrics.RecordToolRounds(rounds)
		}
	}()

	for {
		completion, err := o.client.Complete(ctx, o.systemPrompt, sess.history, decls)
		if err != nil {
			o.logger.Error("HandleMessage: model call failed for %s/%s: %v", role, senderID, err)
			if o.metrics != nil {
				o.metrics.RecordLLMCall(role, "error")
			}
			return fallbackText(lastText)
		}
		if o.metrics != nil {
			o.metrics.RecordLLMCall(role, "ok")
		}

		if !completion.HasToolCalls() {
			if completion.Text == "" {
				o.logger.Warn("HandleMessage: empty completion for %s/%s", role, senderID)
				return fallbackText(lastText)
			}
			return completion.Text
		}
		if completion.Text != "" {
			lastText = completion.Text
		}

		if rounds >= o.maxRounds {
			o.logger.Warn("HandleMessage: tool-round budget (%d) spent for %s/%s", o.maxRounds, role, senderID)
			return fallbackText(lastText)
		}
		rounds++

		// The assistant turn that requested the calls must precede the
		// tool results in history.
		sess.history = append(sess.history, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   completion.Text,
			ToolCalls: completion.ToolCalls,
		})
		for _, call := range completion.ToolCalls {
			result, ok := o.registry.Execute(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
			if o.metrics != nil {
				o.metrics.RecordToolInvocation(role, call.Function.Name, outcome(ok))
			}
			sess.history = append(sess.history, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    result,
			})
		}
	}
}

func (o *Orchestrator) session(senderID string) *session {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sessions == nil {
		o.sessions = make(map[string]*session)
	}
	sess, ok := o.sessions[senderID]
	if !ok {
		sess = &session{}
		o.sessions[senderID] = sess
	}
	return sess
}

// trimHistory keeps the most recent limit messages without orphaning a
// tool result from the assistant turn that requested it.
func trimHistory(history []llm.Message, limit int) []llm.Message {
	if len(history) <= limit {
		return history
	}
	trimmed := history[len(history)-limit:]
	for len(trimmed) > 0 && trimmed[0].Role == llm.RoleTool {
		trimmed = trimmed[1:]
	}
	return trimmed
}

func fallbackText(lastText string) string {
	if lastText != "" {
		return lastText
	}
	return fallbackReply
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
