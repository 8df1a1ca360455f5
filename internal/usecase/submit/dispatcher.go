// Package submit передаёт одну задачу зарегистрированному обработчику.
package submit

import (
	"context"
	"errors"
	"fmt"

	"browserbase-agent/internal/application/port/input"
	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"

	"github.com/google/uuid"
)

var ErrUnsupportedTask = errors.New("no handler for task kind")

// Dispatcher делает ровно один вызов обработчика на задачу, без повторов.
// Результат возвращается без изменений.
type Dispatcher struct {
	runner input.InstructionRunner
	loader input.BatchLoader
	logger output.LoggerPort
}

type Option func(*Dispatcher)

func WithInstructionRunner(r input.InstructionRunner) Option {
	return func(d *Dispatcher) { d.runner = r }
}

func WithBatchLoader(l input.BatchLoader) Option {
	return func(d *Dispatcher) { d.loader = l }
}

func New(logger output.LoggerPort, opts ...Option) *Dispatcher {
	d := &Dispatcher{logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Supports сообщает, зарегистрирован ли обработчик для вида задачи.
func (d *Dispatcher) Supports(kind entity.TaskKind) bool {
	switch kind {
	case entity.TaskKindInstruction:
		return d.runner != nil
	case entity.TaskKindURLBatch:
		return d.loader != nil
	}
	return false
}

func (d *Dispatcher) Submit(ctx context.Context, task entity.Task) (*entity.Result, error) {
	if task == nil {
		return nil, fmt.Errorf("%w: nil task", ErrUnsupportedTask)
	}
	if !d.Supports(task.Kind()) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTask, task.Kind())
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	log := d.logger.WithFields(map[string]any{
		"run_id": uuid.NewString(),
		"kind":   string(task.Kind()),
	})
	log.Info("task submitted")

	var (
		result *entity.Result
		err    error
	)
	switch t := task.(type) {
	case entity.Instruction:
		result, err = d.runInstruction(ctx, t)
	case entity.URLBatch:
		result, err = d.loadBatch(ctx, t)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTask, task)
	}
	if err != nil {
		log.Error("task failed", "error", err)
		return nil, err
	}

	log.Info("task completed", "iterations", result.Iterations, "documents", len(result.Documents))
	return result, nil
}

func (d *Dispatcher) runInstruction(ctx context.Context, task entity.Instruction) (*entity.Result, error) {
	res, err := d.runner.Run(ctx, task)
	if err != nil {
		return nil, err
	}
	return &entity.Result{
		Kind:       entity.TaskKindInstruction,
		Output:     res.FinalAnswer,
		Iterations: res.Iterations,
	}, nil
}

func (d *Dispatcher) loadBatch(ctx context.Context, task entity.URLBatch) (*entity.Result, error) {
	docs, err := d.loader.LoadBatch(ctx, task)
	if err != nil {
		return nil, err
	}
	return &entity.Result{
		Kind:      entity.TaskKindURLBatch,
		Output:    FormatDocuments(docs),
		Documents: docs,
	}, nil
}
