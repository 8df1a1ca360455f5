package entity

import "github.com/tmc/langchaingo/schema"

// Result: сырой результат внешнего фреймворка. Output не модифицируется.
type Result struct {
	Kind       TaskKind
	Output     string
	Documents  []schema.Document
	Iterations int
}
