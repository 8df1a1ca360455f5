package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"browserbase-agent/internal/config"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools"
)

// scriptedModel отдаёт ответы по очереди и запоминает промпты.
type scriptedModel struct {
	mu      sync.Mutex
	replies []string
	prompts []string
	err     error
}

func (m *scriptedModel) next(prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "Final Answer: out of script", nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *scriptedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var sb strings.Builder
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				sb.WriteString(text.Text)
			}
		}
	}
	reply, err := m.next(sb.String())
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return m.next(prompt)
}

type recordingTool struct {
	inputs []string
}

func (t *recordingTool) Name() string        { return "browser_navigate" }
func (t *recordingTool) Description() string { return "Navigates the browser to a URL." }
func (t *recordingTool) Call(ctx context.Context, input string) (string, error) {
	t.inputs = append(t.inputs, input)
	return "Navigated to https://www.npr.org", nil
}

type recordingHooks struct {
	starts []string
}

func (h *recordingHooks) ShowIteration(context.Context, int, int)            {}
func (h *recordingHooks) ShowToolResult(context.Context, string, string, bool) {}
func (h *recordingHooks) ShowThinking(context.Context, string)                {}
func (h *recordingHooks) ShowToolStart(ctx context.Context, name, args string) {
	h.starts = append(h.starts, name)
}

func TestRunner_ActionThenFinalAnswer(t *testing.T) {
	model := &scriptedModel{replies: []string{
		"Thought: I should open the site first.\nAction: browser_navigate\nAction Input: https://www.npr.org",
		"Thought: I now know the final answer\nFinal Answer: Top story: markets rally",
	}}
	nav := &recordingTool{}
	hooks := &recordingHooks{}

	runner := NewRunner(model, []tools.Tool{nav}, Config{
		Persona: Persona{
			Role:      "Web Researcher",
			Goal:      "Gather product information from an e-commerce website",
			Backstory: "I specialize in extracting and analyzing web data.",
		},
		Hooks: hooks,
	}, logger.NewNop())

	res, err := runner.Run(context.Background(), entity.Instruction{Text: "Go to https://www.npr.org and get the headline news story"})
	require.NoError(t, err)

	assert.Equal(t, "Top story: markets rally", res.FinalAnswer)
	assert.Equal(t, 2, res.Iterations)
	require.Len(t, nav.inputs, 1)
	assert.Contains(t, nav.inputs[0], "https://www.npr.org")
	assert.Equal(t, []string{"browser_navigate"}, hooks.starts)

	require.NotEmpty(t, model.prompts)
	assert.Contains(t, model.prompts[0], "You are Web Researcher.")
	assert.Contains(t, model.prompts[0], "get the headline news story")
}

func TestRunner_ModelError(t *testing.T) {
	runner := NewRunner(&scriptedModel{err: errors.New("model overloaded")}, nil, Config{}, logger.NewNop())

	_, err := runner.Run(context.Background(), entity.Instruction{Text: "anything"})
	assert.ErrorContains(t, err, "model overloaded")
}

func TestRunner_EmptyInstruction(t *testing.T) {
	model := &scriptedModel{}
	runner := NewRunner(model, nil, Config{}, logger.NewNop())

	_, err := runner.Run(context.Background(), entity.Instruction{})
	assert.ErrorIs(t, err, entity.ErrEmptyInstruction)
	assert.Empty(t, model.prompts)
}

func TestPersona_Prompt(t *testing.T) {
	assert.Equal(t, "just the task", Persona{}.Prompt("  just the task\n"))

	got := Persona{Role: "Local Expert at this city", Goal: "Provide the BEST insights"}.Prompt("Plan a trip")
	assert.Equal(t, "You are Local Expert at this city.\nYour personal goal is: Provide the BEST insights\n\nCurrent task:\nPlan a trip", got)
}

func TestNewModel(t *testing.T) {
	cfg := &config.Config{
		ModelProvider: config.ProviderOpenAI,
		ModelName:     config.DefaultOpenAIModel,
		Credentials:   config.Credentials{ModelAPIKey: "sk-test"},
	}
	llm, err := NewModel(cfg)
	require.NoError(t, err)
	assert.NotNil(t, llm)

	cfg.ModelProvider = config.ProviderAnthropic
	cfg.ModelName = config.DefaultAnthropicModel
	llm, err = NewModel(cfg)
	require.NoError(t, err)
	assert.NotNil(t, llm)

	cfg.ModelProvider = "cohere"
	_, err = NewModel(cfg)
	assert.Error(t, err)
}
