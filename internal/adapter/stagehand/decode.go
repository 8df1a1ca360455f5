package stagehand

import (
	"encoding/json"
	"fmt"
	"strings"
)

func decode(arguments string, v any) error {
	arguments = strings.TrimSpace(arguments)
	if arguments == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), v); err != nil {
		return fmt.Errorf("invalid input format: %w", err)
	}
	return nil
}
