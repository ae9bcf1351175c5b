package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"score 1 compensates", 1, 10},
		{"score 2 compensates", 2, 10},
		{"score 3 is neutral", 3, 5},
		{"score 4 rewards", 4, 15},
		{"score 5 rewards", 5, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.score))
		})
	}
}
