package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateRange(t *testing.T) {
	tests := []struct {
		name               string
		n, start, end      int
		wantStart, wantEnd int
	}{
		{"full", 5, 0, -1, 0, 4},
		{"negative pair", 5, -2, -1, 3, 4},
		{"end past length", 5, 2, 100, 2, 4},
		{"start past length", 5, 10, 20, 5, 4},
		{"deep negative start", 5, -100, 2, 0, 2},
		{"deep negative end", 5, 0, -100, 0, -1},
		{"empty collection", 0, 0, -1, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := translateRange(tt.n, tt.start, tt.end)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTranslateLimit(t *testing.T) {
	tests := []struct {
		name               string
		n, start, num      int
		wantStart, wantNum int
	}{
		{"plain window", 10, 2, 3, 2, 3},
		{"start past length", 10, 11, 3, 0, 0},
		{"start at length", 10, 10, 3, 10, 3},
		{"zero count", 10, 0, 0, 0, 0},
		{"negative count", 10, 0, -1, 0, 0},
		{"count past end", 10, 8, 100, 8, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, num := translateLimit(tt.n, tt.start, tt.num)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantNum, num)
		})
	}
}
