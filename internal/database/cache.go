package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder assembles a single cache operation. A nil client turns
// every operation into a miss or a no-op.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  any
	ttl    time.Duration
	ctx    context.Context
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) Set() error {
	if b.client == nil {
		return nil
	}

	payload, err := json.Marshal(b.value)
	if err != nil {
		return err
	}

	cmd := b.client.B().Set().Key(b.key).Value(valkey.BinaryString(payload))
	if seconds := int64(b.ttl / time.Second); seconds > 0 {
		return b.client.Do(b.ctx, cmd.ExSeconds(seconds).Build()).Error()
	}
	return b.client.Do(b.ctx, cmd.Build()).Error()
}

// Get decodes the cached value into dest and reports whether it was found.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.client == nil {
		return false, nil
	}

	payload, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}
	return b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
