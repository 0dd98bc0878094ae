package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{Cores: 1}, false},
		{"all set", Config{Cores: 300, DatapathLatency: 10, OverheadFactor: 0.25}, false},
		{"no cores", Config{}, true},
		{"negative datapath", Config{Cores: 1, DatapathLatency: -1}, true},
		{"negative overhead", Config{Cores: 1, OverheadFactor: -1}, true},
		{"NaN overhead", Config{Cores: 1, OverheadFactor: math.NaN()}, true},
		{"infinite overhead", Config{Cores: 1, OverheadFactor: math.Inf(1)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_InterLayerDelay_CeilsProduct(t *testing.T) {
	assert.Equal(t, int64(0), Config{}.interLayerDelay(784))
	assert.Equal(t, int64(150), Config{OverheadFactor: 0.5}.interLayerDelay(300))
	assert.Equal(t, int64(2), Config{OverheadFactor: 0.4}.interLayerDelay(3))
	assert.Equal(t, int64(0), Config{OverheadFactor: 2}.interLayerDelay(0))
}

func TestConfig_Horizon_BoundsSerialRun(t *testing.T) {
	// GIVEN two LeNet requests, the second arriving at 100
	reqs := []*Request{NewRequest(0, 0, lenetLayers), NewRequest(1, 100, lenetLayers)}
	cfg := Config{Cores: 1, DatapathLatency: 5, OverheadFactor: 0.5}

	// WHEN the horizon is computed
	got, err := cfg.horizon(reqs)

	// THEN it covers the last arrival plus all work and delays of both requests
	// work 266200 + datapath 5 + delays 150 and 50, per request
	assert.NoError(t, err)
	assert.Equal(t, int64(100+2*(266200+5+150+50)), got)
}

func TestConfig_Horizon_Overflow_ReturnsInvalidInput(t *testing.T) {
	twoLayers := []Layer{{InputSize: 10, VVPCount: 1}, {InputSize: 10, VVPCount: 1}}
	tests := []struct {
		name string
		cfg  Config
		reqs []*Request
	}{
		{"overhead delay past int64", Config{Cores: 1, OverheadFactor: 1e18}, []*Request{NewRequest(0, 0, twoLayers)}},
		{"datapath latency at max", Config{Cores: 1, DatapathLatency: math.MaxInt64}, []*Request{NewRequest(0, 0, twoLayers)}},
		{"late arrival", Config{Cores: 1}, []*Request{NewRequest(0, math.MaxInt64-5, twoLayers)}},
		{"huge layer work", Config{Cores: 1}, []*Request{NewRequest(0, 0, []Layer{{InputSize: math.MaxInt64 / 2, VVPCount: 3}})}},
		{"sum across requests", Config{Cores: 1, DatapathLatency: math.MaxInt64 / 2},
			[]*Request{NewRequest(0, 0, twoLayers), NewRequest(1, 0, twoLayers)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.horizon(tc.reqs)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
