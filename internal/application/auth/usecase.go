package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/domain"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	"github.com/nicklcsdev/inventario-lite/internal/domain/repository"
	"github.com/nicklcsdev/inventario-lite/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// El rol es siempre "externo" (solo lectura): este flujo es público y no
// acepta rol del cliente; los admins se crean desde el seed.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Email
	}
	now := time.Now()
	user := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Nombre:       nombre,
		PasswordHash: string(hash),
		Rol:          entity.RolExterno,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password y genera el JWT. La respuesta lleva el token,
// la bandera de rol y la identidad: todo lo que la sesión del cliente persiste.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		IsAdmin: user.EsAdmin(),
		Email:   user.Email,
	}, nil
}

func toUserResponse(u *entity.Usuario) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Rol:       u.Rol,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
