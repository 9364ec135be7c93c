package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gorm.io/gorm"

	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
)

// HealthStatus é o retorno do health check
type HealthStatus struct {
	Status   string       `json:"status"`
	Uptime   string       `json:"uptime"`
	Database string       `json:"database"`
	Cache    string       `json:"cache"`
	Memory   MemoryStatus `json:"memory"`
}

// MemoryStatus resume o uso de memória do processo em MB
type MemoryStatus struct {
	AllocMB uint64 `json:"allocMB"`
	SysMB   uint64 `json:"sysMB"`
	NumGC   uint32 `json:"numGC"`
}

// HealthService verifica as dependências da aplicação e expõe as operações
// de manutenção: limpeza do cache de respostas e dos arquivos de log.
type HealthService struct {
	db      *gorm.DB
	cache   ports.Cache
	logsDir string
	started time.Time
	logger  ports.Logger
}

// NewHealthService cria o serviço de health check
func NewHealthService(db *gorm.DB, cache ports.Cache, logsDir string, logger ports.Logger) *HealthService {
	return &HealthService{
		db:      db,
		cache:   cache,
		logsDir: logsDir,
		started: time.Now(),
		logger:  logger,
	}
}

// Check reporta o estado do banco, do cache e do processo. Dependência fora
// do ar rebaixa o status geral sem derrubar o endpoint.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:   "ok",
		Uptime:   time.Since(s.started).Round(time.Second).String(),
		Database: "up",
		Cache:    "up",
	}

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status.Database = "down"
		status.Status = "degraded"
	}

	if err := s.cache.Ping(ctx); err != nil {
		status.Cache = "down"
		status.Status = "degraded"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	status.Memory = MemoryStatus{
		AllocMB: mem.Alloc / 1024 / 1024,
		SysMB:   mem.Sys / 1024 / 1024,
		NumGC:   mem.NumGC,
	}

	return status
}

// ClearCache remove todas as entradas do cache de respostas da API e informa
// quantas chaves foram removidas
func (s *HealthService) ClearCache(_ context.Context) int {
	removed := s.cache.DeletePrefix(ports.ResponseCachePrefix)
	s.logger.Info("response cache cleared", "keys", removed)
	return removed
}

// ClearLogs apaga os arquivos do diretório de logs e informa quantos foram
// removidos
func (s *HealthService) ClearLogs(_ context.Context) (int, error) {
	entries, err := os.ReadDir(s.logsDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, domainerrors.Internal("Failed to read logs directory", "Health", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.logsDir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, domainerrors.Internal(fmt.Sprintf("Failed to remove log file %s", entry.Name()), "Health", err)
		}
		removed++
	}

	s.logger.Info("log files cleared", "files", removed)
	return removed, nil
}
