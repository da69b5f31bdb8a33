package cloud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAWSConfig(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	t.Run("Explicit region", func(t *testing.T) {
		cfg, err := LoadAWSConfig(context.Background(), "ap-south-1")
		require.NoError(t, err)
		assert.Equal(t, "ap-south-1", cfg.Region)
	})

	t.Run("Default region", func(t *testing.T) {
		cfg, err := LoadAWSConfig(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, defaultRegion, cfg.Region)
	})
}

func TestNewClients(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	c, err := NewClients(context.Background(), "ap-south-1")
	require.NoError(t, err)
	assert.NotNil(t, c.DynamoDB)
	assert.NotNil(t, c.SQS)
	assert.NotNil(t, c.CloudWatch)
	assert.Equal(t, "x", *String("x"))
}
