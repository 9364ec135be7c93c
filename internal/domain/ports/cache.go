package ports

import (
	"context"
	"time"
)

// ResponseCachePrefix é o prefixo das chaves usadas pelo cache de respostas
// da API. O endpoint de limpeza de cache remove apenas chaves com esse prefixo.
const ResponseCachePrefix = "apiResponseCache"

// Cache define a interface para o cache de respostas (memória ou Redis)
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	DeletePrefix(prefix string) int
	Ping(ctx context.Context) error
}
