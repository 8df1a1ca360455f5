package stagehand

import (
	"context"
	"errors"
	"testing"

	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/browser/browsertest"
	"browserbase-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTool(browser *browsertest.Browser, opened *int, run input.InstructionRunnerFunc) *Tool {
	return New(browser.Factory(opened), func(output.BrowserPort) input.InstructionRunner { return run }, logger.NewNop())
}

func TestTool_LazySessionAndSingleRelease(t *testing.T) {
	browser := browsertest.New(nil)
	var opened int
	var got []string
	tool := newTool(browser, &opened, func(ctx context.Context, task entity.Instruction) (*input.ExecuteResult, error) {
		got = append(got, task.Text)
		return &input.ExecuteResult{FinalAnswer: "Form submitted"}, nil
	})

	assert.Zero(t, opened, "construction must not open a session")

	out, err := tool.Execute(context.Background(), `{"instruction":"Go to example.com/contact"}`)
	require.NoError(t, err)
	assert.Equal(t, "Form submitted", out)

	_, err = tool.Run(context.Background(), "Confirm the submission was successful")
	require.NoError(t, err)

	assert.Equal(t, 1, opened)
	assert.Equal(t, []string{"Go to example.com/contact", "Confirm the submission was successful"}, got)

	require.NoError(t, tool.Close())
	require.NoError(t, tool.Close())
	assert.Equal(t, 1, browser.CloseCalls)

	_, err = tool.Run(context.Background(), "again")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestTool_ReleaseAfterFailedTask(t *testing.T) {
	browser := browsertest.New(nil)
	boom := errors.New("llm unavailable")
	tool := newTool(browser, nil, func(ctx context.Context, task entity.Instruction) (*input.ExecuteResult, error) {
		return nil, boom
	})

	_, err := tool.Run(context.Background(), "Submit a contact form")
	assert.ErrorIs(t, err, boom)

	require.NoError(t, tool.Close())
	assert.Equal(t, 1, browser.CloseCalls)
}

func TestTool_CloseBeforeUse(t *testing.T) {
	browser := browsertest.New(nil)
	var opened int
	tool := newTool(browser, &opened, nil)

	require.NoError(t, tool.Close())
	assert.Zero(t, opened)
	assert.Zero(t, browser.CloseCalls)
}

func TestTool_OpenFailure(t *testing.T) {
	boom := errors.New("401 Unauthorized")
	factory := output.BrowserFactoryFunc(func(ctx context.Context) (output.BrowserPort, error) {
		return nil, boom
	})
	tool := New(factory, func(output.BrowserPort) input.InstructionRunner { return nil }, logger.NewNop())

	_, err := tool.Run(context.Background(), "go")
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, tool.Close())
}

func TestTool_InvalidInput(t *testing.T) {
	browser := browsertest.New(nil)
	var opened int
	tool := newTool(browser, &opened, nil)

	_, err := tool.Execute(context.Background(), "{not json")
	assert.ErrorContains(t, err, "invalid input format")

	_, err = tool.Execute(context.Background(), `{"instruction":""}`)
	assert.ErrorIs(t, err, entity.ErrEmptyInstruction)
	assert.Zero(t, opened)
}
