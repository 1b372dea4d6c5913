package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatus_Constructors(t *testing.T) {
	tests := []struct {
		name      string
		status    HealthStatus
		state     HealthState
		healthy   bool
		degraded  bool
		unhealthy bool
	}{
		{"healthy", Healthy("ok"), HealthStateHealthy, true, false, false},
		{"degraded", Degraded("slow"), HealthStateDegraded, false, true, false},
		{"unhealthy", Unhealthy("down"), HealthStateUnhealthy, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, tt.status.State)
			assert.Equal(t, tt.healthy, tt.status.IsHealthy())
			assert.Equal(t, tt.degraded, tt.status.IsDegraded())
			assert.Equal(t, tt.unhealthy, tt.status.IsUnhealthy())
			assert.WithinDuration(t, time.Now(), tt.status.CheckedAt, time.Second)
		})
	}
}
