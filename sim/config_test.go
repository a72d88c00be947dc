package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtocolFromConfig_Variants(t *testing.T) {
	fifo, err := ProtocolFromConfig(ProtocolConfig{Name: "greedy_fifo", Capacity: 3})
	assert.NoError(t, err)
	assert.Equal(t, KindGreedyFIFO, fifo.Kind())
	assert.Equal(t, 3, fifo.Capacity())

	lis, err := ProtocolFromConfig(ProtocolConfig{Name: "greedy_lis", Capacity: 2})
	assert.NoError(t, err)
	assert.Equal(t, KindGreedyLIS, lis.Kind())
	assert.Equal(t, 2, lis.Capacity())

	oed, err := ProtocolFromConfig(ProtocolConfig{Name: "oed_with_swap"})
	assert.NoError(t, err)
	assert.Equal(t, KindOEDWithSwap, oed.Kind())
	assert.Equal(t, 1, oed.Capacity())
}

func TestProtocolFromConfig_DefaultsCapacityToOne(t *testing.T) {
	fifo, err := ProtocolFromConfig(ProtocolConfig{Name: "greedy_fifo"})
	assert.NoError(t, err)
	assert.Equal(t, 1, fifo.Capacity())
}

func TestProtocolFromConfig_UnknownName_Errors(t *testing.T) {
	_, err := ProtocolFromConfig(ProtocolConfig{Name: "round_robin"})
	assert.Error(t, err)
}

func TestProtocolToConfig_RoundTrips(t *testing.T) {
	cfg := ProtocolConfig{Name: "greedy_lis", Capacity: 4}
	protocol, err := ProtocolFromConfig(cfg)
	assert.NoError(t, err)
	assert.Equal(t, cfg, ProtocolToConfig(protocol))
}

func TestThresholdFromConfig_Variants(t *testing.T) {
	timed, err := ThresholdFromConfig(ThresholdConfig{Name: "timed", MaxRds: 100})
	assert.NoError(t, err)
	assert.Equal(t, KindTimed, timed.Kind())

	load, err := ThresholdFromConfig(ThresholdConfig{Name: "total_load", MaxLoad: 50})
	assert.NoError(t, err)
	assert.Equal(t, KindTotalLoad, load.Kind())
}

func TestThresholdFromConfig_Invalid_Errors(t *testing.T) {
	_, err := ThresholdFromConfig(ThresholdConfig{Name: "timed"})
	assert.Error(t, err, "timed threshold without max_rds")

	_, err = ThresholdFromConfig(ThresholdConfig{Name: "total_load"})
	assert.Error(t, err, "total_load threshold without max_load")

	_, err = ThresholdFromConfig(ThresholdConfig{Name: "deadline"})
	assert.Error(t, err, "unknown threshold name")
}
