package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building so staging and
// production deployments can share one Redis instance without collisions.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}
	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyChannel builds the cache key for a channel record.
func (kb *KeyBuilder) KeyChannel(channelID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChannel, channelID))
}

// KeyChannelVideos builds the cache key for a channel's stored video list.
func (kb *KeyBuilder) KeyChannelVideos(channelID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChannelVideos, channelID))
}

// KeyChannelCount builds the cache key for a channel's stored video count.
func (kb *KeyBuilder) KeyChannelCount(channelID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyChannelCount, channelID))
}

// ChannelPattern matches every cached key belonging to one channel.
func (kb *KeyBuilder) ChannelPattern(channelID string) string {
	return kb.BuildKey(fmt.Sprintf("catalog:channel:%s*", channelID))
}
