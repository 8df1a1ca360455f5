package input

import (
	"context"

	"browserbase-agent/internal/domain/entity"
)

type ExecuteResult struct {
	FinalAnswer string
	Iterations  int
}

// InstructionRunner выполняет одну задачу на естественном языке.
type InstructionRunner interface {
	Run(ctx context.Context, task entity.Instruction) (*ExecuteResult, error)
}

type InstructionRunnerFunc func(ctx context.Context, task entity.Instruction) (*ExecuteResult, error)

func (f InstructionRunnerFunc) Run(ctx context.Context, task entity.Instruction) (*ExecuteResult, error) {
	return f(ctx, task)
}
