package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Provider 缓存抽象
// Redis不可用时降级为进程内缓存，调用方不感知
type Provider interface {
	Get(key string, dest any) error
	Set(key string, value any, expiration time.Duration) error
}

type inMemoryItem struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryProvider 进程内缓存，JSON序列化后存储
type InMemoryProvider struct {
	mu    sync.RWMutex
	items map[string]inMemoryItem
}

func NewInMemoryProvider() *InMemoryProvider {
	return &InMemoryProvider{items: map[string]inMemoryItem{}}
}

func (p *InMemoryProvider) Get(key string, dest any) error {
	if p == nil {
		return fmt.Errorf("cache provider is nil")
	}
	p.mu.RLock()
	item, ok := p.items[key]
	p.mu.RUnlock()
	if !ok {
		return fmt.Errorf("cache miss")
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		p.mu.Lock()
		delete(p.items, key)
		p.mu.Unlock()
		return fmt.Errorf("cache expired")
	}
	if len(item.data) == 0 {
		return fmt.Errorf("cache empty")
	}
	return json.Unmarshal(item.data, dest)
}

func (p *InMemoryProvider) Set(key string, value any, expiration time.Duration) error {
	if p == nil {
		return fmt.Errorf("cache provider is nil")
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	p.mu.Lock()
	p.items[key] = inMemoryItem{data: b, expiresAt: expiresAt}
	p.mu.Unlock()
	return nil
}

// RedisProvider 基于Redis的缓存，复用包级客户端
type RedisProvider struct{}

func NewRedisProvider() *RedisProvider {
	return &RedisProvider{}
}

func (p *RedisProvider) Get(key string, dest any) error {
	return Get(key, dest)
}

func (p *RedisProvider) Set(key string, value any, expiration time.Duration) error {
	return Set(key, value, expiration)
}
