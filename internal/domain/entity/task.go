package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type TaskKind string

const (
	TaskKindInstruction TaskKind = "instruction"
	TaskKindURLBatch    TaskKind = "url_batch"
)

var (
	ErrEmptyInstruction = errors.New("instruction text is empty")
	ErrEmptyURLBatch    = errors.New("url batch is empty")
	ErrInvalidURL       = errors.New("invalid url")
)

// Task это задача для агента или загрузчика, реализуется Instruction и URLBatch.
type Task interface {
	Kind() TaskKind
	Validate() error
}

// Instruction: задача на естественном языке для LLM-агента.
type Instruction struct {
	Text string
}

func (Instruction) Kind() TaskKind { return TaskKindInstruction }

func (i Instruction) Validate() error {
	if strings.TrimSpace(i.Text) == "" {
		return ErrEmptyInstruction
	}
	return nil
}

// URLBatch: упорядоченный список страниц для прямой загрузки.
// TextContent=true означает, что нужен только видимый текст, а не HTML.
type URLBatch struct {
	URLs        []string
	TextContent bool
}

func (URLBatch) Kind() TaskKind { return TaskKindURLBatch }

func (b URLBatch) Validate() error {
	if len(b.URLs) == 0 {
		return ErrEmptyURLBatch
	}
	for _, raw := range b.URLs {
		if err := ValidateURL(raw); err != nil {
			return err
		}
	}
	return nil
}

// ValidateURL принимает только абсолютные http(s) адреса.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q: unsupported scheme", ErrInvalidURL, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q: missing host", ErrInvalidURL, raw)
	}
	return nil
}
