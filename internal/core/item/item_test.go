package item

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochMillis(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "epoch", raw: "1970-01-01T00:00:00Z", want: 0},
		{name: "with offset", raw: "2024-06-01T12:00:00+02:00", want: 1717236000000},
		{name: "empty", raw: "", want: math.NaN()},
		{name: "garbage", raw: "yesterday-ish", want: math.NaN()},
		{name: "date only", raw: "2024-06-01", want: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EpochMillis(tt.raw)
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindPlain.IsValid())
	assert.True(t, KindEbook.IsValid())
	assert.True(t, KindNotebook.IsValid())
	assert.False(t, Kind("").IsValid())
	assert.False(t, Kind("magazine").IsValid())
}
