package project_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sipahq/sipa-api/internal/domain"
	"github.com/sipahq/sipa-api/internal/domain/entity"
	"github.com/sipahq/sipa-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Protegidos con mutex para
// poder ejercitar el servicio desde varias goroutines.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProjectRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Project
	// codeAlwaysTaken simula un espacio de códigos agotado en la verificación.
	codeAlwaysTaken bool
	// duplicateCreates simula la carrera del índice único sobre code: los
	// primeros N inserts fallan con ErrDuplicate aunque CodeExists dijo libre.
	duplicateCreates int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: map[string]*entity.Project{}}
}

func (r *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.duplicateCreates > 0 {
		r.duplicateCreates--
		return domain.ErrDuplicate
	}
	for _, row := range r.byID {
		if row.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codeAlwaysTaken {
		return true, nil
	}
	for _, p := range r.byID {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) ListPaginated(_ context.Context, f repository.ProjectFilter) ([]*entity.Project, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Project
	for _, p := range r.byID {
		if f.CreatorID != "" {
			if p.CreatedByID == nil || *p.CreatedByID != f.CreatorID {
				continue
			}
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		cp := *p
		all = append(all, &cp)
	}
	return all, len(all), nil
}

func (r *fakeProjectRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type fakeOrgRepo struct {
	mu           sync.Mutex
	byID         map[string]*entity.Organization
	byIdentifier map[string]*entity.Organization
	// duplicateOnCreate simula perder la carrera del índice único: el primer
	// Create devuelve ErrDuplicate y deja una fila "ganadora" ya registrada.
	duplicateOnCreate *entity.Organization
	createCalls       int
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		byID:         map[string]*entity.Organization{},
		byIdentifier: map[string]*entity.Organization{},
	}
}

func (r *fakeOrgRepo) Create(_ context.Context, o *entity.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.duplicateOnCreate != nil {
		winner := r.duplicateOnCreate
		r.duplicateOnCreate = nil
		r.byID[winner.ID] = winner
		r.byIdentifier[winner.Identifier] = winner
		return domain.ErrDuplicate
	}
	if _, taken := r.byIdentifier[o.Identifier]; taken {
		return domain.ErrDuplicate
	}
	cp := *o
	r.byID[o.ID] = &cp
	r.byIdentifier[o.Identifier] = &cp
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrgRepo) GetByIdentifier(_ context.Context, identifier string) (*entity.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byIdentifier[identifier]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[u.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.User
	for _, u := range r.byID {
		cp := *u
		all = append(all, &cp)
	}
	return all, nil
}

func (r *fakeUserRepo) countByEmail() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

type fakeProfileRepo struct {
	mu          sync.Mutex
	byUserID    map[string]*entity.UserProfile
	createCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: map[string]*entity.UserProfile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if _, taken := r.byUserID[p.UserID]; taken {
		return domain.ErrDuplicate
	}
	cp := *p
	r.byUserID[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type fakeTeamRepo struct {
	mu          sync.Mutex
	rows        []*entity.ProjectTeamMember
	createCalls int
	updateCalls int
}

func newFakeTeamRepo() *fakeTeamRepo { return &fakeTeamRepo{} }

func (r *fakeTeamRepo) Create(_ context.Context, m *entity.ProjectTeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	for _, row := range r.rows {
		if row.ProjectID == m.ProjectID && row.UserID == m.UserID {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeTeamRepo) GetByProjectAndUser(_ context.Context, projectID, userID string) (*entity.ProjectTeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ProjectID == projectID && row.UserID == userID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTeamRepo) ListByProject(_ context.Context, projectID string) ([]*entity.ProjectTeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProjectTeamMember
	for _, row := range r.rows {
		if row.ProjectID == projectID {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, m *entity.ProjectTeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	for i, row := range r.rows {
		if row.ID == m.ID {
			cp := *m
			r.rows[i] = &cp
			return nil
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes del emisor de credenciales y del notificador
// ──────────────────────────────────────────────────────────────────────────────

// fakeIssuer crea usuarios directamente en el fake repo, sin bcrypt, y registra
// las contraseñas temporales emitidas.
type fakeIssuer struct {
	users       *fakeUserRepo
	issued      []string
	tempCounter int
}

func (f *fakeIssuer) Register(ctx context.Context, name, email, plainPassword, role string) (*entity.User, error) {
	existing, _ := f.users.GetByEmail(ctx, email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash:" + plainPassword,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := f.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (f *fakeIssuer) NewTemporaryPassword() string {
	f.tempCounter++
	temp := fmt.Sprintf("Temp#%04daZ", f.tempCounter)
	f.issued = append(f.issued, temp)
	return temp
}

type sentEmail struct {
	To   string
	Name string
	Temp string
}

type fakeNotifier struct {
	configured bool
	failSend   bool
	welcomes   []sentEmail
	resets     []sentEmail
}

func (n *fakeNotifier) IsConfigured() bool { return n.configured }

func (n *fakeNotifier) SendWelcomeEmail(_ context.Context, to, name, temporaryPassword string) error {
	if n.failSend {
		return fmt.Errorf("smtp: conexión rechazada")
	}
	n.welcomes = append(n.welcomes, sentEmail{To: to, Name: name, Temp: temporaryPassword})
	return nil
}

func (n *fakeNotifier) SendPasswordResetEmail(_ context.Context, to, name, temporaryPassword string) error {
	if n.failSend {
		return fmt.Errorf("smtp: conexión rechazada")
	}
	n.resets = append(n.resets, sentEmail{To: to, Name: name, Temp: temporaryPassword})
	return nil
}
