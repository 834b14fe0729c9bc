package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ".", c.DataDir)
		assert.Equal(t, "products.json", c.ProductsFile)
		assert.Equal(t, "coupons.json", c.CouponsFile)
		assert.Equal(t, "cards.json", c.CardsFile)
		assert.Equal(t, 3, c.MaxAttempts)
		assert.Equal(t, log.InfoLevel, c.Level())
		assert.False(t, c.NoColor)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("VENDING_DATA_DIR", "/srv/vending")
		t.Setenv("VENDING_MAX_ATTEMPTS", "5")
		t.Setenv("VENDING_LOG_LEVEL", "debug")
		t.Setenv("VENDING_NO_COLOR", "true")

		c, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "/srv/vending", c.DataDir)
		assert.Equal(t, 5, c.MaxAttempts)
		assert.Equal(t, log.DebugLevel, c.Level())
		assert.True(t, c.NoColor)
	})

	t.Run("Fail on non-positive attempts", func(t *testing.T) {
		t.Setenv("VENDING_MAX_ATTEMPTS", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Fail on unknown log level", func(t *testing.T) {
		t.Setenv("VENDING_LOG_LEVEL", "loud")
		_, err := Load()
		assert.Error(t, err)
	})
}
