package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilder(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantPrefix  string
	}{
		{name: "production", environment: "production", wantPrefix: "prod"},
		{name: "development", environment: "development", wantPrefix: "staging"},
		{name: "staging", environment: "staging", wantPrefix: "staging"},
		{name: "test", environment: "test", wantPrefix: "staging"},
		{name: "unknown defaults to prod", environment: "something", wantPrefix: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilder_ChannelKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:catalog:channel:abc-123", kb.KeyChannel("abc-123"))
	assert.Equal(t, "prod:catalog:channel:abc-123:videos", kb.KeyChannelVideos("abc-123"))
	assert.Equal(t, "prod:catalog:channel:abc-123:count", kb.KeyChannelCount("abc-123"))
	assert.Equal(t, "prod:catalog:channel:abc-123*", kb.ChannelPattern("abc-123"))
}
