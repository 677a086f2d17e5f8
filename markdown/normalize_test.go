package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrderedLists(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single blank joins items", "1. a\n\n2. b\n", "1. a\n2. b\n"},
		{"two blanks keep lists apart", "1. a\n\n\n2. b\n", "1. a\n\n2. b\n"},
		{"long gap collapses", "1. a\n\n\n\n\n2. b\n", "1. a\n\n2. b\n"},
		{"adjacent items untouched", "1. a\n2. b\n", "1. a\n2. b\n"},
		{"blank before paragraph kept", "1. a\n\ntext\n", "1. a\n\ntext\n"},
		{"trailing gap collapses", "1. a\n\n\n", "1. a\n\n"},
		{"bullets untouched", "- a\n\n- b\n", "- a\n\n- b\n"},
		{"no trailing newline", "1. a\n\n2. b", "1. a\n2. b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOrderedLists(tt.in))
		})
	}
}
