package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
)

// Memory implementa ports.Cache em memória de processo
type Memory struct {
	c *gocache.Cache
}

// NewMemory cria um cache em memória com limpeza periódica
func NewMemory() ports.Cache {
	return &Memory{c: gocache.New(gocache.NoExpiration, time.Minute)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	return b, true
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *Memory) DeletePrefix(prefix string) int {
	deleted := 0
	for key := range m.c.Items() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
			deleted++
		}
	}
	return deleted
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}
