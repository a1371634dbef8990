package auth

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sipahq/sipa-api/internal/application/dto"
	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
	"github.com/sipahq/sipa-api/internal/domain/repository"
	"github.com/sipahq/sipa-api/pkg/jwt"
	"github.com/sipahq/sipa-api/pkg/logger"
	"github.com/sipahq/sipa-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y
// restablecimiento de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	notifier domain.Notifier
	jwtCfg   JWTConfig
	log      *logger.Logger

	// rand.Rand no es seguro para uso concurrente; randMu serializa el acceso.
	randMu sync.Mutex
	rng    *rand.Rand
}

// NewAuthUseCase construye el caso de uso de auth. La fuente de aleatoriedad
// se inyecta para que los tests puedan fijar la secuencia.
func NewAuthUseCase(userRepo repository.UserRepository, notifier domain.Notifier, jwtCfg JWTConfig, rng *rand.Rand, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, notifier: notifier, jwtCfg: jwtCfg, rng: rng, log: log}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// RegisterUser crea un usuario desde el endpoint público de registro: valida el
// rol, hashea con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email
// ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	role, ok := entity.ParseUserRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("rol inválido: %s", in.Role)
	}
	user, err := uc.Register(ctx, in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Register crea y persiste un usuario con la credencial ya hasheada. Es el
// emisor de credenciales que usa el aprovisionamiento de equipos además del
// registro público.
func (uc *AuthUseCase) Register(ctx context.Context, name, email, plainPassword, role string) (*entity.User, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RestorePassword genera una contraseña temporal, la persiste hasheada y envía
// el correo de restablecimiento. Si el correo no está configurado o falla el
// envío, la contraseña temporal viaja en el mensaje para que el admin la
// comunique (comportamiento de desarrollo).
func (uc *AuthUseCase) RestorePassword(ctx context.Context, in dto.RestorePasswordRequest) (*dto.RestorePasswordResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, domain.ErrUnauthorized
	}

	temp := uc.newTemporaryPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	var message string
	switch {
	case !uc.notifier.IsConfigured():
		message = fmt.Sprintf("Modo desarrollo - Contraseña temporal: %s", temp)
	default:
		if err := uc.notifier.SendPasswordResetEmail(ctx, user.Email, user.Name, temp); err != nil {
			uc.log.Warn().Err(err).Str("email", user.Email).Msg("fallo al enviar correo de restablecimiento")
			message = fmt.Sprintf("No se pudo enviar el correo. La contraseña temporal es: %s", temp)
		} else {
			message = fmt.Sprintf("Se ha enviado un correo a %s con la contraseña temporal.", user.Email)
		}
	}

	return &dto.RestorePasswordResponse{Email: user.Email, Message: message}, nil
}

// NewTemporaryPassword genera una contraseña temporal con la fuente inyectada.
// También lo usa el aprovisionamiento de equipos al crear usuarios nuevos.
func (uc *AuthUseCase) NewTemporaryPassword() string {
	return uc.newTemporaryPassword()
}

func (uc *AuthUseCase) newTemporaryPassword() string {
	uc.randMu.Lock()
	defer uc.randMu.Unlock()
	return password.GenerateTemporary(uc.rng)
}

// ToUserResponse mapea la entidad User a su DTO de salida.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		Status:           u.Status,
		AvatarColor:      u.AvatarColor,
		ProjectsAssigned: u.ProjectsAssigned,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
