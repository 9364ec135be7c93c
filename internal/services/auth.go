package services

import (
	"context"
	"encoding/json"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/tenantbase-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/mail"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/token"
)

const authResource = "Auth"

// Mensagem única para qualquer falha de login: não revela se o e-mail existe
const invalidCredentials = "Invalid email or password"

// Mensagem única para qualquer falha no fluxo de reset de senha
const invalidResetToken = "Invalid or expired reset token."

// LoginResult é o retorno de um login ou registro bem-sucedido
type LoginResult struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// AuthService implementa autenticação: login, registro, extensão de sessão e
// o fluxo de reset de senha por e-mail.
type AuthService struct {
	users        *postgres.Repository[entities.User]
	usersService *UsersService
	tokens       *token.Service
	mailer       ports.Mailer
	uow          ports.UnitOfWork
	appURL       string
	logger       ports.Logger
}

// NewAuthService cria o serviço de autenticação
func NewAuthService(
	users *postgres.Repository[entities.User],
	usersService *UsersService,
	tokens *token.Service,
	mailer ports.Mailer,
	uow ports.UnitOfWork,
	appURL string,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		users:        users,
		usersService: usersService,
		tokens:       tokens,
		mailer:       mailer,
		uow:          uow,
		appURL:       appURL,
		logger:       logger,
	}
}

// Login autentica por e-mail e senha. E-mail desconhecido e senha incorreta
// produzem exatamente o mesmo erro.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.Unauthorized(invalidCredentials, authResource)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domainerrors.Unauthorized(invalidCredentials, authResource)
	}

	user.Password = ""
	user.ResetToken = nil

	claims, err := userClaims(user)
	if err != nil {
		return nil, domainerrors.Internal("Failed to build token claims", authResource, err)
	}

	tk, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, domainerrors.Internal("Failed to sign token", authResource, err)
	}

	s.logger.Info("user logged in", "id", user.ID, "email", user.Email)
	return &LoginResult{Token: tk, User: user}, nil
}

// Register cria o usuário e já devolve uma sessão autenticada
func (s *AuthService) Register(ctx context.Context, user *entities.User) (*LoginResult, error) {
	password := user.Password
	if _, err := s.usersService.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.Login(ctx, user.Email, password)
}

// ExtendToken emite um novo token com a expiração renovada a partir de um
// token ainda válido. Tokens de reset de senha não abrem sessão.
func (s *AuthService) ExtendToken(_ context.Context, tokenString string) (string, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return "", err
	}
	if token.IsResetToken(claims) {
		return "", domainerrors.Forbidden("Invalid or expired token", authResource)
	}
	return s.tokens.Issue(claims)
}

// ForgotPassword emite um token de reset, persiste-o no usuário e envia o
// link por e-mail. Se o envio falhar, o token persistido é revogado.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return domainerrors.BadRequest("Users does not exist!", usersResource)
	}

	resetToken, err := s.tokens.IssueResetToken(map[string]any{
		"sub":   user.ID,
		"email": user.Email,
	})
	if err != nil {
		return domainerrors.Internal("Failed to sign reset token", authResource, err)
	}

	if _, err := s.users.Update(ctx, user.ID, map[string]any{"resetToken": resetToken}); err != nil {
		return err
	}

	accountName := user.Email
	if user.Name != nil && *user.Name != "" {
		accountName = *user.Name
	}

	body, err := mail.ForgotPasswordBody(accountName, s.appURL+"/reset-password?token="+resetToken)
	if err != nil {
		return domainerrors.Internal("Failed to render reset email", authResource, err)
	}

	if err := s.mailer.Send(user.Email, "Password Reset", body); err != nil {
		// o token persistido não pode sobreviver a um e-mail que nunca chegou
		if _, revokeErr := s.users.Update(ctx, user.ID, map[string]any{"resetToken": nil}); revokeErr != nil {
			s.logger.Error("failed to revoke reset token", "id", user.ID, "error", revokeErr)
		}
		return domainerrors.Internal("Failed to send reset email", authResource, err)
	}

	s.logger.Info("reset link sent", "id", user.ID)
	return nil
}

// ResetPassword troca a senha a partir de um token de reset válido. Token
// desconhecido, expirado, sem o propósito de reset ou divergente do persistido
// produzem o mesmo erro. A troca apaga o token na mesma transação.
func (s *AuthService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	user, err := s.users.GetByField(ctx, "resetToken", tokenString)
	if err != nil {
		return err
	}
	if user == nil || user.ResetToken == nil || *user.ResetToken != tokenString {
		return domainerrors.BadRequest(invalidResetToken, authResource)
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil || !token.IsResetToken(claims) {
		return domainerrors.BadRequest(invalidResetToken, authResource)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.usersService.bcryptCost)
	if err != nil {
		return domainerrors.Internal("Failed to hash password", authResource, err)
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.users.Update(txCtx, user.ID, map[string]any{
			"password":   string(hashed),
			"resetToken": nil,
		})
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("password reset", "id", user.ID)
	return nil
}

// userClaims projeta o usuário sanitizado como claims do token
func userClaims(user *entities.User) (map[string]any, error) {
	b, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	var claims map[string]any
	if err := json.Unmarshal(b, &claims); err != nil {
		return nil, err
	}
	claims["sub"] = user.ID
	return claims, nil
}
