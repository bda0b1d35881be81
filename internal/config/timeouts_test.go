package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeouts(t *testing.T) {
	timeouts := DefaultTimeouts()

	assert.Equal(t, 30*time.Second, timeouts.Request)
	assert.Equal(t, 2*time.Minute, timeouts.Submit)
	assert.NoError(t, timeouts.Validate())
}

func TestTimeouts_Validate(t *testing.T) {
	tests := []struct {
		name     string
		timeouts Timeouts
		wantErr  []string
	}{
		{
			name:     "zero request",
			timeouts: Timeouts{Submit: time.Minute},
			wantErr:  []string{"timeouts.request"},
		},
		{
			name:     "negative submit",
			timeouts: Timeouts{Request: time.Second, Submit: -time.Second},
			wantErr:  []string{"timeouts.submit"},
		},
		{
			name:     "both unset",
			timeouts: Timeouts{},
			wantErr:  []string{"timeouts.request", "timeouts.submit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.timeouts.Validate()
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}
