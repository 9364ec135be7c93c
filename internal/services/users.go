package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/storage"
)

const usersResource = "Users"

// UsersService implementa as regras de usuários sobre o CRUD genérico:
// unicidade de e-mail, hash de senha, tenant e role padrão e a exclusão em
// cascata de arquivos e conversas do usuário.
type UsersService struct {
	*Service[entities.User]

	users         *postgres.Repository[entities.User]
	files         *postgres.Repository[entities.File]
	conversations *postgres.Repository[entities.Conversation]
	tenants       *postgres.Repository[entities.Tenant]
	roles         *postgres.Repository[entities.Role]
	uow           ports.UnitOfWork
	storage       *storage.Disk
	bcryptCost    int
	logger        ports.Logger
}

// NewUsersService cria o serviço de usuários
func NewUsersService(
	users *postgres.Repository[entities.User],
	files *postgres.Repository[entities.File],
	conversations *postgres.Repository[entities.Conversation],
	tenants *postgres.Repository[entities.Tenant],
	roles *postgres.Repository[entities.Role],
	uow ports.UnitOfWork,
	disk *storage.Disk,
	bcryptCost int,
	logger ports.Logger,
) *UsersService {
	return &UsersService{
		Service:       NewService(users, bcryptCost, logger),
		users:         users,
		files:         files,
		conversations: conversations,
		tenants:       tenants,
		roles:         roles,
		uow:           uow,
		storage:       disk,
		bcryptCost:    bcryptCost,
		logger:        logger,
	}
}

// NormalizeEmail aplica a forma canônica de e-mail usada em todo o sistema
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create cria um usuário: e-mail canônico e único, senha com hash bcrypt e
// tenant/role padrão quando não informados
func (s *UsersService) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	user.Email = NormalizeEmail(user.Email)

	existing, err := s.users.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("Users already exists!", usersResource)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return nil, domainerrors.Internal("Failed to hash password", usersResource, err)
	}
	user.Password = string(hashed)

	if user.TenantID == nil {
		tenant, err := s.tenants.GetByField(ctx, "name", entities.DefaultTenantName)
		if err != nil {
			return nil, err
		}
		if tenant != nil {
			user.TenantID = &tenant.ID
		}
	}

	if user.RoleID == nil {
		role, err := s.roles.GetByField(ctx, "name", entities.RoleUser)
		if err != nil {
			return nil, err
		}
		if role != nil {
			user.RoleID = &role.ID
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.Conflict("Users already exists!", usersResource)
		}
		return nil, err
	}

	s.logger.Info("user created", "id", user.ID, "email", user.Email)

	user.Password = ""
	user.ResetToken = nil
	return user, nil
}

// Update atualiza um usuário. E-mail é normalizado e verificado contra os
// demais usuários; senha nova recebe hash antes de persistir.
func (s *UsersService) Update(ctx context.Context, id string, fields map[string]any) (*entities.User, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domainerrors.BadRequest("Users does not exist!", usersResource)
	}

	if raw, ok := fields["email"].(string); ok {
		email := NormalizeEmail(raw)
		other, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domainerrors.Conflict("Email already exists!", usersResource)
		}
		fields["email"] = email
	}

	if raw, ok := fields["password"].(string); ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(raw), s.bcryptCost)
		if err != nil {
			return nil, domainerrors.Internal("Failed to hash password", usersResource, err)
		}
		fields["password"] = string(hashed)
	}

	return s.users.Update(ctx, id, fields)
}

// Delete remove um usuário e, na mesma transação, seus arquivos e conversas.
// Os artefatos em disco dos arquivos são removidos depois do commit.
func (s *UsersService) Delete(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.BadRequest("Users does not exist!", usersResource)
	}

	files, err := s.files.GetByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		fileIDs := make([]string, 0, len(files))
		for _, f := range files {
			fileIDs = append(fileIDs, f.ID)
		}
		if len(fileIDs) > 0 {
			if _, err := s.files.DeleteMany(txCtx, fileIDs); err != nil {
				return err
			}
		}

		conversations, err := s.conversations.GetByUser(txCtx, id)
		if err != nil {
			return err
		}
		conversationIDs := make([]string, 0, len(conversations))
		for _, c := range conversations {
			conversationIDs = append(conversationIDs, c.ID)
		}
		if len(conversationIDs) > 0 {
			if _, err := s.conversations.DeleteMany(txCtx, conversationIDs); err != nil {
				return err
			}
		}

		_, err = s.users.Delete(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if f.Name == nil {
			continue
		}
		if err := s.storage.Remove(*f.Name); err != nil {
			s.logger.Warn("failed to remove file from disk", "file", *f.Name, "error", err)
		}
	}

	s.logger.Info("user deleted", "id", id, "files", len(files))
	return user, nil
}

// GetByEmail busca um usuário pelo e-mail para a rota administrativa de
// consulta. Campos sensíveis são apagados antes do retorno.
func (s *UsersService) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.BadRequest("Users not found", usersResource)
	}

	user.Password = ""
	user.ResetToken = nil
	return user, nil
}
