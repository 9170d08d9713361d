package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"portal/internal/config"
	"portal/internal/models/db_models"
	mem "portal/pkg/memcache"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:      "test-secret",
		AllowedExts:    []string{"png", "jpg", "jpeg", "gif"},
		MaxUploadBytes: 16 << 20,
		SessionTTL:     time.Hour,
	}
}

// fakeAccountRepo is an in-memory AccountRepository with optional error
// injection per method.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*db_models.Account

	insertErr      error
	findErr        error
	listErr        error
	updateErr      error
	deleteErr      error
	updatePhotoErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*db_models.Account)}
}

func (f *fakeAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now().Unix()
	copied := *account
	f.accounts[account.ID.String()] = &copied
	return nil
}

func (f *fakeAccountRepo) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAccountRepo) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) List(ctx context.Context) ([]db_models.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db_models.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccountRepo) UpdateContact(ctx context.Context, id, phone, address string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		a.Phone = phone
		a.Address = address
	}
	return nil
}

func (f *fakeAccountRepo) UpdatePhoto(ctx context.Context, id, filename string) error {
	if f.updatePhotoErr != nil {
		return f.updatePhotoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		a.Photo = &filename
	}
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.accounts)
}

// loginSession logs a stored user in through the identity service and returns
// the live session.
func loginSession(repo *fakeAccountRepo, sessions mem.SessionStore, username, password string) (*mem.Session, error) {
	identity := NewIdentityService(repo, sessions, testConfig())
	sess, _, err := identity.Login(context.Background(), username, password)
	return sess, err
}
