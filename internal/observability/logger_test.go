package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		debugOn bool
		warnOn  bool
	}{
		{name: "verbose enables debug", verbose: true, debugOn: true, warnOn: true},
		{name: "quiet keeps warnings only", verbose: false, debugOn: false, warnOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.verbose)
			require.NoError(t, err)
			defer func() { _ = logger.Sync() }()

			assert.Equal(t, tt.debugOn, logger.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.warnOn, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}
