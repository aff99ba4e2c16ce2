package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSVFromWet(t *testing.T) {
	tests := []struct {
		name       string
		wetHours   int
		wetTempAvg float64
		expected   int
	}{
		{"below minimum wetness", 5, 24, 0},
		{"zero wet hours", 0, 24, 0},
		{"NaN temperature", 10, math.NaN(), 0},
		{"positive infinity", 10, math.Inf(1), 0},
		{"negative infinity", 10, math.Inf(-1), 0},

		{"optimal band eight hours", 8, 24, 3},
		{"optimal band six hours", 6, 24, 2},
		{"optimal band ten hours", 10, 24, 4},
		{"optimal band very long wetness", 20, 24, 4},

		{"cool band six hours", 6, 15, 1},
		{"cool band twelve hours", 12, 15, 4},
		{"cold band fourteen hours", 14, 10, 4},
		{"cold band eight hours", 8, 10, 1},

		{"hot band ten hours", 10, 30, 3},
		{"hot band caps at three", 24, 30, 3},

		{"lower bound inclusive", 6, 21, 2},
		{"upper bound exclusive falls to next rule", 6, 27, 1},
		{"below all rules", 10, 5, 0},
		{"above all rules", 10, 41, 0},
		{"top of table exclusive", 10, 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DSVFromWet(tt.wetHours, tt.wetTempAvg))
		})
	}
}

func TestDailyDSVClampsToCap(t *testing.T) {
	p := DefaultParams()
	p.DSVCap = 2
	e := NewEngine(p)

	day := DailyRecord{WetHours: 12, WetTempAvg: 24} // table says 4
	assert.Equal(t, 2, e.DailyDSV(day))
}
