package typing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateDelay(t *testing.T) {
	t.Run("jitter-free delay matches the wpm math exactly", func(t *testing.T) {
		// 50 chars at 125 wpm: 50 / ((125*5)/60) = 4.8s, inside [0.9, 8]
		sim := NewSimulator(125, 0.9, 8, 0)
		text := strings.Repeat("a", 50)
		assert.InDelta(t, 4.8, sim.EstimateDelay(text, nil), 1e-9)
	})

	t.Run("short text clamps to the minimum", func(t *testing.T) {
		sim := NewSimulator(125, 0.9, 8, 0)
		assert.Equal(t, 0.9, sim.EstimateDelay("hi", nil))
	})

	t.Run("long text clamps to the maximum", func(t *testing.T) {
		sim := NewSimulator(125, 0.9, 8, 0)
		assert.Equal(t, 8.0, sim.EstimateDelay(strings.Repeat("a", 5000), nil))
	})

	t.Run("mention characters are discounted", func(t *testing.T) {
		sim := NewSimulator(125, 0, 1000, 0)
		mention := "123456@c.us"
		text := "hello @123456 " + strings.Repeat("a", 100)

		plain := sim.EstimateDelay(text, nil)
		discounted := sim.EstimateDelay(text, []string{mention})
		assert.Less(t, discounted, plain)

		cps := (125.0 * 5.0) / 60.0
		expected := (float64(len(text)) - 0.75*float64(len(mention))) / cps
		assert.InDelta(t, expected, discounted, 1e-9)
	})

	t.Run("result stays within bounds for any jitter draw", func(t *testing.T) {
		draws := []float64{0, 0.25, 0.5, 0.75, 0.999999}
		for _, draw := range draws {
			sim := NewSimulatorWithRand(125, 0.9, 8, 0.2, func() float64 { return draw })
			for _, length := range []int{0, 1, 10, 50, 200, 10000} {
				delay := sim.EstimateDelay(strings.Repeat("x", length), nil)
				assert.GreaterOrEqual(t, delay, 0.9)
				assert.LessOrEqual(t, delay, 8.0)
			}
		}
	})

	t.Run("jitter shifts the base both ways", func(t *testing.T) {
		text := strings.Repeat("a", 50) // base 4.8 at 125 wpm

		low := NewSimulatorWithRand(125, 0.9, 8, 0.2, func() float64 { return 0 })
		high := NewSimulatorWithRand(125, 0.9, 8, 0.2, func() float64 { return 0.999999 })

		assert.Less(t, low.EstimateDelay(text, nil), 4.8)
		assert.Greater(t, high.EstimateDelay(text, nil), 4.8)
	})

	t.Run("zero wpm does not divide by zero", func(t *testing.T) {
		sim := NewSimulator(0, 0.9, 8, 0)
		assert.Equal(t, 8.0, sim.EstimateDelay("hello", nil))
	})
}
