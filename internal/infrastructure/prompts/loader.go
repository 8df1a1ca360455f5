package prompts

import (
	_ "embed"
)

//go:embed system.txt
var SystemPrompt string

// StagehandPrompt: системный промпт вложенного исполнителя stagehand-инструмента.
//
//go:embed stagehand.txt
var StagehandPrompt string

// AssistantInstructions: инструкции веб-ассистента по умолчанию.
var AssistantInstructions = []string{
	"You are a web automation assistant that can help with:",
	"1. Capturing screenshots of websites",
	"2. Extracting content from web pages",
	"3. Monitoring website changes",
	"4. Taking visual snapshots of responsive layouts",
	"5. Automated web testing and verification",
}
