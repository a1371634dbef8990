package auth_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sipahq/sipa-api/internal/application/auth"
	"github.com/sipahq/sipa-api/internal/application/dto"
	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
	"github.com/sipahq/sipa-api/pkg/jwt"
	"github.com/sipahq/sipa-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, taken := r.byEmail[u.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var all []*entity.User
	for _, u := range r.byID {
		cp := *u
		all = append(all, &cp)
	}
	return all, nil
}

type memNotifier struct {
	configured bool
	failSend   bool
	resetsTo   []string
	resetTemps []string
}

func (n *memNotifier) IsConfigured() bool { return n.configured }

func (n *memNotifier) SendWelcomeEmail(_ context.Context, to, name, temporaryPassword string) error {
	if n.failSend {
		return fmt.Errorf("smtp: conexión rechazada")
	}
	return nil
}

func (n *memNotifier) SendPasswordResetEmail(_ context.Context, to, name, temporaryPassword string) error {
	if n.failSend {
		return fmt.Errorf("smtp: conexión rechazada")
	}
	n.resetsTo = append(n.resetsTo, to)
	n.resetTemps = append(n.resetTemps, temporaryPassword)
	return nil
}

const testSecret = "test-secret-key-for-unit-tests"

func newAuthUC(repo *memUserRepo, notifier *memNotifier) *auth.AuthUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return auth.NewAuthUseCase(repo, notifier, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "sipa-test",
	}, rand.New(rand.NewSource(42)), log)
}

func seedUser(t *testing.T, repo *memUserRepo, email, plain, role, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "user-" + email,
		Name:         "Usuario Semilla",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_DevuelveTokenConClaims(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "ana@sipa.gov.co", "Secreta#123", entity.RoleAdmin, entity.UserStatusActive)
	uc := newAuthUC(repo, &memNotifier{})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@sipa.gov.co", Password: "Secreta#123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@sipa.gov.co", out.User.Email)

	userID, email, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "ana@sipa.gov.co", email)
	assert.Equal(t, entity.RoleAdmin, role, "el token debe llevar el rol para el RBAC")
}

func TestLogin_PasswordIncorrecta_Retorna401(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "ana@sipa.gov.co", "Secreta#123", entity.RoleAdmin, entity.UserStatusActive)
	uc := newAuthUC(repo, &memNotifier{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@sipa.gov.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_Falla(t *testing.T) {
	uc := newAuthUC(newMemUserRepo(), &memNotifier{})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@sipa.gov.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva_Retorna403(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "baja@sipa.gov.co", "Secreta#123", entity.RoleConsulta, entity.UserStatusInactive)
	uc := newAuthUC(repo, &memNotifier{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "baja@sipa.gov.co", Password: "Secreta#123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_CreaYDevuelveToken(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo, &memNotifier{})

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Pedro Páez", Email: "pedro@sipa.gov.co", Password: "Secreta#123", Role: "asesor",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAsesor, out.User.Role, "el rol se normaliza a mayúsculas")

	stored, err := repo.GetByEmail(context.Background(), "pedro@sipa.gov.co")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Secreta#123", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secreta#123")))
}

func TestRegisterUser_RolDesconocido_Rechaza(t *testing.T) {
	uc := newAuthUC(newMemUserRepo(), &memNotifier{})
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Pedro", Email: "pedro@sipa.gov.co", Password: "Secreta#123", Role: "SUPERUSUARIO",
	})
	assert.Error(t, err)
}

func TestRegisterUser_EmailDuplicado_Retorna409(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "pedro@sipa.gov.co", "Secreta#123", entity.RoleAsesor, entity.UserStatusActive)
	uc := newAuthUC(repo, &memNotifier{})

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Pedro", Email: "pedro@sipa.gov.co", Password: "Secreta#123", Role: "ASESOR",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restauración de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestRestorePassword_SinSMTP_DevuelveTemporalEnMensaje(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "ana@sipa.gov.co", "Vieja#123", entity.RoleAdmin, entity.UserStatusActive)
	uc := newAuthUC(repo, &memNotifier{configured: false})

	out, err := uc.RestorePassword(context.Background(), dto.RestorePasswordRequest{Email: "ana@sipa.gov.co"})
	require.NoError(t, err)
	assert.Contains(t, out.Message, "Modo desarrollo",
		"sin SMTP el mensaje expone la contraseña temporal para el admin")

	stored, err := repo.GetByEmail(context.Background(), "ana@sipa.gov.co")
	require.NoError(t, err)
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Vieja#123")),
		"la contraseña anterior deja de ser válida")
}

func TestRestorePassword_ConSMTP_EnviaCorreoConTemporal(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "ana@sipa.gov.co", "Vieja#123", entity.RoleAdmin, entity.UserStatusActive)
	notifier := &memNotifier{configured: true}
	uc := newAuthUC(repo, notifier)

	out, err := uc.RestorePassword(context.Background(), dto.RestorePasswordRequest{Email: "ana@sipa.gov.co"})
	require.NoError(t, err)
	assert.Contains(t, out.Message, "ana@sipa.gov.co")
	require.Len(t, notifier.resetsTo, 1)

	stored, err := repo.GetByEmail(context.Background(), "ana@sipa.gov.co")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(notifier.resetTemps[0])),
		"la temporal enviada debe coincidir con el hash persistido")
}

func TestRestorePassword_EnvioFalla_DevuelveTemporalEnMensaje(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "ana@sipa.gov.co", "Vieja#123", entity.RoleAdmin, entity.UserStatusActive)
	uc := newAuthUC(repo, &memNotifier{configured: true, failSend: true})

	out, err := uc.RestorePassword(context.Background(), dto.RestorePasswordRequest{Email: "ana@sipa.gov.co"})
	require.NoError(t, err, "el fallo del correo no debe propagar")
	assert.Contains(t, out.Message, "No se pudo enviar el correo")
}

func TestRestorePassword_CuentaInexistenteOInactiva_Rechaza(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "baja@sipa.gov.co", "Vieja#123", entity.RoleConsulta, entity.UserStatusInactive)
	uc := newAuthUC(repo, &memNotifier{})

	_, err := uc.RestorePassword(context.Background(), dto.RestorePasswordRequest{Email: "nadie@sipa.gov.co"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.RestorePassword(context.Background(), dto.RestorePasswordRequest{Email: "baja@sipa.gov.co"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
