package services

import (
	"context"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
)

// ConversationsService gerencia conversas. Fora a listagem por usuário, o
// comportamento é o CRUD genérico.
type ConversationsService struct {
	*Service[entities.Conversation]

	conversations *postgres.Repository[entities.Conversation]
}

// NewConversationsService cria o serviço de conversas
func NewConversationsService(
	conversations *postgres.Repository[entities.Conversation],
	bcryptCost int,
	logger ports.Logger,
) *ConversationsService {
	return &ConversationsService{
		Service:       NewService(conversations, bcryptCost, logger),
		conversations: conversations,
	}
}

// GetByUser retorna as conversas de um usuário
func (s *ConversationsService) GetByUser(ctx context.Context, userID string) ([]entities.Conversation, error) {
	return s.conversations.GetByUser(ctx, userID)
}
