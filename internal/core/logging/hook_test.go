package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want map[string]string
	}{
		{
			name: "full run",
			ctx:  WithRun(context.Background(), Run{SessionID: "run-123", DataFile: "regions.yaml"}),
			want: map[string]string{FieldSession: "run-123", FieldDataFile: "regions.yaml"},
		},
		{
			name: "session only",
			ctx:  WithSessionID(context.Background(), "run-123"),
			want: map[string]string{FieldSession: "run-123"},
		},
		{
			name: "no run",
			ctx:  context.Background(),
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.ctx).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, key := range []string{FieldSession, FieldDataFile} {
				want, ok := tt.want[key]
				if !ok {
					assert.NotContains(t, entry, key)
					continue
				}
				assert.Equal(t, want, entry[key])
			}
		})
	}
}

func TestContextHook_WithoutCtx(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Msg("plain")

	assert.NotContains(t, buf.String(), FieldSession)
}
