package provider

import (
	"testing"
	"time"

	"github.com/bassista/go_records/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderFromConfig_Local(t *testing.T) {
	for _, kind := range []string{config.ProviderKindLocal, ""} {
		p, err := NewProviderFromConfig(config.ProviderConfig{Kind: kind})
		require.NoError(t, err)
		assert.IsType(t, &LocalFixtureProvider{}, p)
	}
}

func TestNewProviderFromConfig_File(t *testing.T) {
	p, err := NewProviderFromConfig(config.ProviderConfig{Kind: config.ProviderKindFile, FilePath: "/tmp/records.json"})
	require.NoError(t, err)

	fp, ok := p.(*FileFixtureProvider)
	require.True(t, ok)
	assert.Equal(t, "/tmp/records.json", fp.path)
}

func TestNewProviderFromConfig_FileWithoutPath(t *testing.T) {
	p, err := NewProviderFromConfig(config.ProviderConfig{Kind: config.ProviderKindFile})
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestNewProviderFromConfig_Remote(t *testing.T) {
	p, err := NewProviderFromConfig(config.ProviderConfig{
		Kind:      config.ProviderKindRemote,
		Endpoint:  "http://localhost:9000/posts",
		Timeout:   3 * time.Second,
		RateLimit: 5,
		RateBurst: 2,
	})
	require.NoError(t, err)

	rp, ok := p.(*RemoteProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:9000/posts", rp.endpoint)
	assert.Equal(t, 3*time.Second, rp.timeout)
	require.NotNil(t, rp.limiter)
	assert.Equal(t, 2, rp.limiter.Burst())
}

func TestNewProviderFromConfig_RemoteWithoutEndpoint(t *testing.T) {
	p, err := NewProviderFromConfig(config.ProviderConfig{Kind: config.ProviderKindRemote})
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestNewProviderFromConfig_Unknown(t *testing.T) {
	p, err := NewProviderFromConfig(config.ProviderConfig{Kind: "ftp"})
	assert.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "unknown provider kind")
}
