package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/infra/storage/ledger"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/llm"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/integrations/mpesa"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/tools"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/usecase/book_ticket"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// scriptedLLM replays canned completions and records every request.
type scriptedLLM struct {
	mu        sync.Mutex
	script    []*llm.Completion
	err       error
	calls     int
	histories [][]llm.Message
}

func (s *scriptedLLM) Complete(_ context.Context, _ string, history []llm.Message, _ []llm.ToolDecl) (*llm.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	snapshot := make([]llm.Message, len(history))
	copy(snapshot, history)
	s.histories = append(s.histories, snapshot)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.script) == 0 {
		return &llm.Completion{Text: "script exhausted"}, nil
	}
	next := s.script[0]
	s.script = s.script[1:]
	return next, nil
}

type stubBooker struct{}

func (stubBooker) Execute(context.Context, *book_ticket.Request) (*book_ticket.Response, error) {
	return nil, book_ticket.ErrRouteNotFound
}

type stubGateway struct{}

func (stubGateway) Initiate(context.Context, string, float64) (*mpesa.CheckoutResult, error) {
	return &mpesa.CheckoutResult{Reference: "CRQ-1", Message: "ok"}, nil
}

func (stubGateway) Status(context.Context, string) (*mpesa.StatusResult, error) {
	return &mpesa.StatusResult{State: mpesa.StatePending, Message: "ok"}, nil
}

func customerRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	store := ledger.New()
	_, err := store.CreateRoute(&domain.Route{
		Origin:        "Nairobi",
		Destination:   "Kisumu",
		DepartureTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Price:         1500,
		Capacity:      40,
		BusClass:      domain.ClassEconomy,
	})
	require.NoError(t, err)
	return tools.NewCustomerRegistry(tools.CustomerDeps{
		Ledger:  store,
		Gateway: stubGateway{},
		Booker:  stubBooker{},
		Logger:  nopLogger{},
	})
}

func newOrchestrator(t *testing.T, client LLMClient, cfg Config) *Orchestrator {
	t.Helper()
	o := New(customerRegistry(t), client, "You are the TwendeBus assistant.", cfg, nopLogger{}, nil)
	return o.WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)
	})
}

func toolCall(id, name, args string) llm.ToolCall {
	return llm.ToolCall{
		ID:   id,
		Type: "function",
		Function: llm.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestHandleMessagePlainText(t *testing.T) {
	client := &scriptedLLM{script: []*llm.Completion{
		{Text: "Jambo! Where would you like to travel?"},
	}}
	o := newOrchestrator(t, client, Config{})

	reply := o.HandleMessage(context.Background(), "wa:254712345678", "Hi")
	assert.Equal(t, "Jambo! Where would you like to travel?", reply)
	assert.Equal(t, 1, client.calls)

	// The user turn carries a wall-clock annotation.
	require.Len(t, client.histories[0], 1)
	assert.Contains(t, client.histories[0][0].Content, "Sun, 01 Jun 2025 07:30 UTC")
	assert.Contains(t, client.histories[0][0].Content, "Hi")
}

func TestHandleMessageToolRound(t *testing.T) {
	client := &scriptedLLM{script: []*llm.Completion{
		{ToolCalls: []llm.ToolCall{
			toolCall("call_1", "searchRoutes", `{"origin":"Nairobi","destination":"Kisumu"}`),
		}},
		{Text: "There is one bus at 08:00, KES 1500."},
	}}
	o := newOrchestrator(t, client, Config{})

	reply := o.HandleMessage(context.Background(), "wa:254712345678", "Any buses to Kisumu?")
	assert.Equal(t, "There is one bus at 08:00, KES 1500.", reply)
	assert.Equal(t, 2, client.calls)

	// Second request: user, assistant tool request, correlated tool result.
	second := client.histories[1]
	require.Len(t, second, 3)
	assert.Equal(t, llm.RoleAssistant, second[1].Role)
	require.Len(t, second[1].ToolCalls, 1)
	assert.Equal(t, llm.RoleTool, second[2].Role)
	assert.Equal(t, "call_1", second[2].ToolCallID)
	assert.Equal(t, "searchRoutes", second[2].Name)
	assert.Contains(t, second[2].Content, "Kisumu")
}

// Tool calls the registry does not know still produce a result turn, so
// the model can recover in natural language.
func TestHandleMessageUnknownToolFedBack(t *testing.T) {
	client := &scriptedLLM{script: []*llm.Completion{
		{ToolCalls: []llm.ToolCall{toolCall("call_1", "readMind", `{}`)}},
		{Text: "Let me ask differently."},
	}}
	o := newOrchestrator(t, client, Config{})

	reply := o.HandleMessage(context.Background(), "wa:1", "hm")
	assert.Equal(t, "Let me ask differently.", reply)

	second := client.histories[1]
	require.Len(t, second, 3)
	assert.Contains(t, second[2].Content, "unknown tool")
}

func TestHandleMessageRunawayGuard(t *testing.T) {
	// The model keeps demanding tools; the loop must cut it off.
	endless := make([]*llm.Completion, 0, 10)
	for i := 0; i < 10; i++ {
		endless = append(endless, &llm.Completion{ToolCalls: []llm.ToolCall{
			toolCall(fmt.Sprintf("call_%d", i), "searchRoutes", `{"origin":"Nairobi","destination":"Kisumu"}`),
		}})
	}
	client := &scriptedLLM{script: endless}
	o := newOrchestrator(t, client, Config{MaxToolRounds: 3})

	reply := o.HandleMessage(context.Background(), "wa:1", "loop please")
	assert.Equal(t, fallbackReply, reply)
	// 3 executed rounds plus the completion that exceeded the budget.
	assert.Equal(t, 4, client.calls)
}

func TestHandleMessageModelFailureIsApology(t *testing.T) {
	client := &scriptedLLM{err: assert.AnError}
	o := newOrchestrator(t, client, Config{})

	reply := o.HandleMessage(context.Background(), "wa:1", "Hi")
	assert.Equal(t, fallbackReply, reply)
}

func TestHandleMessageHistoryCapped(t *testing.T) {
	client := &scriptedLLM{}
	for i := 0; i < 30; i++ {
		client.script = append(client.script, &llm.Completion{Text: fmt.Sprintf("reply %d", i)})
	}
	o := newOrchestrator(t, client, Config{HistoryLimit: 6})

	for i := 0; i < 30; i++ {
		o.HandleMessage(context.Background(), "wa:1", fmt.Sprintf("message %d", i))
	}

	sess := o.session("wa:1")
	assert.LessOrEqual(t, len(sess.history), 6)
	assert.NotEqual(t, llm.RoleTool, sess.history[0].Role)
}

func TestHandleMessageSessionsAreIsolated(t *testing.T) {
	client := &scriptedLLM{script: []*llm.Completion{
		{Text: "reply one"},
		{Text: "reply two"},
	}}
	o := newOrchestrator(t, client, Config{})

	o.HandleMessage(context.Background(), "wa:1", "first sender")
	o.HandleMessage(context.Background(), "wa:2", "second sender")

	// Each sender's second request starts from its own history.
	require.Len(t, client.histories[1], 1)
	assert.Contains(t, client.histories[1][0].Content, "second sender")
}

func TestTrimHistoryDropsOrphanToolResults(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "a"},
		{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{toolCall("c1", "searchRoutes", "{}")}},
		{Role: llm.RoleTool, ToolCallID: "c1", Content: "{}"},
		{Role: llm.RoleAssistant, Content: "done"},
		{Role: llm.RoleUser, Content: "b"},
	}
	trimmed := trimHistory(history, 3)
	// The cut would start at the tool result; it gets dropped too.
	require.Len(t, trimmed, 2)
	assert.Equal(t, llm.RoleAssistant, trimmed[0].Role)
	assert.Equal(t, "done", trimmed[0].Content)
}
