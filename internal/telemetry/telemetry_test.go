package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"usermgmt/internal/config"
	"usermgmt/internal/logging"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.ObservabilityConfig{Enabled: false}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
