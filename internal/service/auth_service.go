package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/apierror"
	"catalogo/internal/config"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/schema"
)

const costoBcrypt = 12

// Claims are the custom claims embedded in every access token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService registers and authenticates users and issues bearer tokens.
type AuthService interface {
	Registrar(ctx context.Context, email, password string) (*model.Usuario, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerificarToken(token string) (*Claims, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Registrar(ctx context.Context, email, password string) (*model.Usuario, error) {
	if !schema.EmailValido(email) {
		return nil, apierror.Invalid("El email no tiene un formato válido")
	}
	if !schema.PasswordFuerte(password) {
		return nil, apierror.Invalid("La contraseña debe tener al menos 6 caracteres, una letra y un número")
	}

	// Pre-insert equality query; no store-level uniqueness constraint backs
	// this check, so two concurrent registrations can race. Accepted.
	_, err := s.repo.BuscarPorEmail(ctx, email)
	if err == nil {
		return nil, apierror.Conflict("El usuario ya existe")
	}
	if !errors.Is(err, repository.ErrNoEncontrado) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), costoBcrypt)
	if err != nil {
		return nil, err
	}
	u := &model.Usuario{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.repo.Crear(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if !schema.EmailValido(email) {
		return "", apierror.Unauthorized("El email no tiene un formato válido")
	}

	// Missing user and wrong password share one message so the endpoint
	// cannot be used to enumerate accounts.
	u, err := s.repo.BuscarPorEmail(ctx, email)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return "", apierror.Unauthorized("Usuario o contraseña incorrectos")
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", apierror.Unauthorized("Usuario o contraseña incorrectos")
	}

	expira := time.Now().Add(time.Duration(s.cfg.JWTExpirationSeconds) * time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expira)},
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) VerificarToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apierror.Unauthorized("Token expirado")
		}
		return nil, apierror.Unauthorized("Token inválido")
	}
	if !token.Valid {
		return nil, apierror.Unauthorized("Token inválido")
	}
	return claims, nil
}
