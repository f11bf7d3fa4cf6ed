package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMinimumVersion(t *testing.T) {
	tests := []struct {
		name          string
		cliVersion    string
		minVersion    string
		expectError   bool
		errorContains string
	}{
		{
			name:        "exact match",
			cliVersion:  "1.2.0",
			minVersion:  "1.2.0",
			expectError: false,
		},
		{
			name:        "cli newer patch",
			cliVersion:  "1.2.5",
			minVersion:  "1.2.0",
			expectError: false,
		},
		{
			name:        "cli newer minor",
			cliVersion:  "1.3.0",
			minVersion:  "1.2.0",
			expectError: false,
		},
		{
			name:        "cli newer major",
			cliVersion:  "2.0.0",
			minVersion:  "1.9.9",
			expectError: false,
		},
		{
			name:          "cli older patch",
			cliVersion:    "1.2.0",
			minVersion:    "1.2.1",
			expectError:   true,
			errorContains: "older than the required minimum",
		},
		{
			name:          "cli older major",
			cliVersion:    "1.9.9",
			minVersion:    "2.0.0",
			expectError:   true,
			errorContains: "older than the required minimum",
		},
		{
			name:        "development build skips check",
			cliVersion:  "main",
			minVersion:  "99.0.0",
			expectError: false,
		},
		{
			name:        "empty minimum means no requirement",
			cliVersion:  "1.2.0",
			minVersion:  "",
			expectError: false,
		},
		{
			name:        "v prefix on cli",
			cliVersion:  "v1.2.0",
			minVersion:  "1.2.0",
			expectError: false,
		},
		{
			name:        "v prefix on minimum",
			cliVersion:  "1.2.0",
			minVersion:  "v1.2.0",
			expectError: false,
		},
		{
			name:          "invalid cli version",
			cliVersion:    "not-a-version",
			minVersion:    "1.2.0",
			expectError:   true,
			errorContains: "invalid cli version",
		},
		{
			name:          "invalid minimum version",
			cliVersion:    "1.2.0",
			minVersion:    "not-a-version",
			expectError:   true,
			errorContains: "invalid minimum version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMinimumVersion(tt.cliVersion, tt.minVersion)
			if tt.expectError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
