package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
	assert.Equal(t, -2, ParseIntDefault("-2", 7))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name               string
		page, size         int
		wantPage, wantFrom int
		wantLimit          int
	}{
		{"defaults", 0, 0, 1, 0, DefaultPageSize},
		{"second page", 2, 20, 2, 20, 20},
		{"negative page", -5, 5, 1, 0, 5},
		{"clamped size", 3, 500, 3, 2 * MaxPageSize, MaxPageSize},
		{"huge page", math.MaxInt, 10, math.MaxInt32/10 + 1, math.MaxInt32 / 10 * 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, from, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 10))
	assert.Equal(t, 1, Pages(10, 10))
	assert.Equal(t, 2, Pages(11, 10))
	assert.Equal(t, 0, Pages(5, 0))
}
