package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RolandGoud/bikescraper/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithBrand adds brand to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithBrand(ctx, "trek")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithStage adds stage to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithStage(ctx, "inference")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithStore adds store backend to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithStore(ctx, "sqlite")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithRunID tags logger and context", func(t *testing.T) {
		testLogger := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), testLogger.Logger)
		ctx = logging.WithRunID(ctx, "run-42")

		assert.Equal(t, "run-42", logging.RunID(ctx))

		logging.FromContext(ctx).Info().Msg("tagged")
		testLogger.AssertContains(t, "run-42")
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"brand":   "canyon",
			"records": 87,
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext returns default for empty context", func(t *testing.T) {
		logger := logging.FromContext(context.Background())
		assert.NotNil(t, logger)
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithBrand(ctx, "trek")

		logger := logging.Ctx(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithBrand(ctx, "trek")
		ctx = logging.WithStage(ctx, "merge")
		ctx = logging.WithStore(ctx, "files")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})
}
