package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_Validate(t *testing.T) {
	assert.NoError(t, Instruction{Text: "Go to https://www.npr.org"}.Validate())
	assert.ErrorIs(t, Instruction{Text: "  \n"}.Validate(), ErrEmptyInstruction)
	assert.Equal(t, TaskKindInstruction, Instruction{}.Kind())
}

func TestURLBatch_Validate(t *testing.T) {
	tests := []struct {
		name    string
		batch   URLBatch
		wantErr error
	}{
		{"two pages", URLBatch{URLs: []string{"https://www.espn.com", "https://lilianweng.github.io/posts/2023-06-23-agent/"}}, nil},
		{"empty", URLBatch{}, ErrEmptyURLBatch},
		{"ftp scheme", URLBatch{URLs: []string{"ftp://example.com"}}, ErrInvalidURL},
		{"javascript", URLBatch{URLs: []string{"javascript:alert(1)"}}, ErrInvalidURL},
		{"relative", URLBatch{URLs: []string{"/posts"}}, ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.batch.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
