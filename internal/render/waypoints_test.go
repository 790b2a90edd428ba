package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteLink(t *testing.T) {
	tests := []struct {
		name         string
		destinations []string
		expected     string
	}{
		{
			name:         "no destinations",
			destinations: nil,
			expected:     "",
		},
		{
			name:         "single destination",
			destinations: []string{"A"},
			expected:     "https://www.google.com/maps/dir/?api=1&origin=A",
		},
		{
			name:         "two destinations",
			destinations: []string{"A", "B"},
			expected:     "https://www.google.com/maps/dir/?api=1&origin=A&destination=B",
		},
		{
			// With three stops the interior slice [1 : len-2] is empty:
			// the waypoints parameter is present but carries no value.
			name:         "three destinations",
			destinations: []string{"A", "B", "C"},
			expected:     "https://www.google.com/maps/dir/?api=1&origin=A&destination=C&waypoints=",
		},
		{
			// Five stops: only B and C become waypoints. D, the
			// second-to-last stop, is excluded along with the final stop.
			name:         "five destinations",
			destinations: []string{"A", "B", "C", "D", "E"},
			expected:     "https://www.google.com/maps/dir/?api=1&origin=A&destination=E&waypoints=B%7CC",
		},
		{
			name:         "addresses are escaped",
			destinations: []string{"1 Main St, Reno, NV", "2 Oak Ave, Reno, NV"},
			expected:     "https://www.google.com/maps/dir/?api=1&origin=1+Main+St%2C+Reno%2C+NV&destination=2+Oak+Ave%2C+Reno%2C+NV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RouteLink(tt.destinations))
		})
	}
}
