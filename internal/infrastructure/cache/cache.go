package cache

import (
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/config"
)

// New seleciona o backend de cache: Redis quando REDIS_URL está configurada,
// memória caso contrário.
func New(cfg *config.RedisConfig, logger ports.Logger) (ports.Cache, error) {
	if cfg.URL != "" {
		logger.Info("using redis cache", "url", cfg.URL)
		return NewRedis(cfg.URL)
	}
	logger.Info("using in-memory cache")
	return NewMemory(), nil
}
