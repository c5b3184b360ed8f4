package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"dancemeet/internal/domain"
)

type account struct {
	member       *domain.Member
	role         domain.Role
	passwordHash string
}

// Directory is the in-memory member directory backing the login stub and
// id lookups. Demo accounts carry credentials; plain members (the demo
// friends) only resolve by id.
type Directory struct {
	hasher   domain.PasswordHasher
	mu       sync.RWMutex
	accounts map[string]*account // keyed by lowercased email
	byID     map[string]*domain.Member
	order    []string
}

// NewDirectory returns an empty directory using hasher for credential
// checks.
func NewDirectory(hasher domain.PasswordHasher) *Directory {
	return &Directory{
		hasher:   hasher,
		accounts: make(map[string]*account),
		byID:     make(map[string]*domain.Member),
	}
}

// AddAccount registers a member that can log in. The password is hashed
// at seed time.
func (d *Directory) AddAccount(member *domain.Member, role domain.Role, password string) error {
	hash, err := d.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accounts[strings.ToLower(member.Email)] = &account{
		member:       member.Clone(),
		role:         role,
		passwordHash: hash,
	}
	d.addLocked(member)
	return nil
}

// AddMember registers a member without credentials.
func (d *Directory) AddMember(member *domain.Member) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addLocked(member)
}

func (d *Directory) addLocked(member *domain.Member) {
	if _, ok := d.byID[member.ID]; !ok {
		d.order = append(d.order, member.ID)
	}
	d.byID[member.ID] = member.Clone()
}

// LookupByCredentials returns the member and role for a matching
// email/password pair, or ErrMemberNotFound. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (d *Directory) LookupByCredentials(ctx context.Context, email, password string) (*domain.Member, domain.Role, error) {
	d.mu.RLock()
	acct, ok := d.accounts[strings.ToLower(strings.TrimSpace(email))]
	d.mu.RUnlock()
	if !ok {
		return nil, "", domain.ErrMemberNotFound
	}
	if err := d.hasher.Compare(acct.passwordHash, password); err != nil {
		return nil, "", domain.ErrMemberNotFound
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	// byID holds the freshest record (profile updates land there).
	if m, ok := d.byID[acct.member.ID]; ok {
		return m.Clone(), acct.role, nil
	}
	return acct.member.Clone(), acct.role, nil
}

// LookupByID returns the member with the given id, or ErrMemberNotFound.
func (d *Directory) LookupByID(ctx context.Context, id string) (*domain.Member, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.byID[id]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	return m.Clone(), nil
}

// Update replaces the stored member record.
func (d *Directory) Update(ctx context.Context, member *domain.Member) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[member.ID]; !ok {
		return domain.ErrMemberNotFound
	}
	d.byID[member.ID] = member.Clone()
	return nil
}

// Members returns all known members in registration order.
func (d *Directory) Members() []*domain.Member {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*domain.Member, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id].Clone())
	}
	return out
}
