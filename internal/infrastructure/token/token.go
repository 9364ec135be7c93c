package token

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	domainerrors "github.com/rafabene/tenantbase-backend/internal/domain/errors"
)

// PurposeResetPassword marca tokens emitidos exclusivamente para o fluxo de
// reset de senha. Tokens de login não carregam esse claim.
const PurposeResetPassword = "reset-password"

// Claims reservados que nunca são aceitos do chamador: são sempre
// recalculados na emissão.
var registeredClaims = map[string]bool{
	"exp": true,
	"iat": true,
	"nbf": true,
}

// Service emite e verifica tokens assinados com segredo compartilhado (HS256)
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService cria um novo serviço de tokens
func NewService(secret string, expiry time.Duration) *Service {
	return &Service{secret: []byte(secret), expiry: expiry}
}

// Issue assina os claims informados com a expiração configurada.
// exp, iat e nbf vindos do chamador são descartados antes da assinatura.
func (s *Service) Issue(claims map[string]any) (string, error) {
	mc := jwtv5.MapClaims{}
	for k, v := range claims {
		if registeredClaims[k] {
			continue
		}
		mc[k] = v
	}

	now := time.Now().UTC()
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(s.expiry).Unix()

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, mc)
	return tk.SignedString(s.secret)
}

// IssueResetToken assina os claims com o marcador de propósito de reset de
// senha. Fora o marcador, o token é estruturalmente igual a um token de login.
func (s *Service) IssueResetToken(claims map[string]any) (string, error) {
	withPurpose := make(map[string]any, len(claims)+1)
	for k, v := range claims {
		withPurpose[k] = v
	}
	withPurpose["purpose"] = PurposeResetPassword
	return s.Issue(withPurpose)
}

// Verify valida assinatura e expiração. Qualquer falha (token malformado,
// expirado ou assinatura inválida) retorna o mesmo erro 403 sem detalhes.
func (s *Service) Verify(tokenString string) (map[string]any, error) {
	parsed, err := jwtv5.Parse(tokenString,
		func(_ *jwtv5.Token) (any, error) { return s.secret, nil },
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, domainerrors.Forbidden("Invalid or expired token", "Auth")
	}

	claims, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, domainerrors.Forbidden("Invalid or expired token", "Auth")
	}
	return map[string]any(claims), nil
}

// IsResetToken informa se os claims carregam o marcador de reset de senha
func IsResetToken(claims map[string]any) bool {
	purpose, _ := claims["purpose"].(string)
	return purpose == PurposeResetPassword
}
