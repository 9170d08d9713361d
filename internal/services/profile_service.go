package services

import (
	"context"
	"log"
	"strings"

	"portal/internal/models/response_models"
	"portal/internal/repositories"
	mem "portal/pkg/memcache"
	"portal/pkg/utils"
)

type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, sess *mem.Session) (response_models.AccountResponse, error)
	UpdateContactInfo(ctx context.Context, sess *mem.Session, phone, address string) error
	ListAccounts(ctx context.Context, sess *mem.Session) (response_models.DashboardResponse, error)
	DeleteAccount(ctx context.Context, sess *mem.Session, targetID string) error
}

type ProfileService struct {
	accountRepo repositories.AccountRepository
	photos      repositories.PhotoStore
	sessions    mem.SessionStore
}

func NewProfileService(accountRepo repositories.AccountRepository, photos repositories.PhotoStore, sessions mem.SessionStore) ProfileServiceInterface {
	return &ProfileService{
		accountRepo: accountRepo,
		photos:      photos,
		sessions:    sessions,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, sess *mem.Session) (response_models.AccountResponse, error) {

	if sess.Superuser {
		return response_models.AccountResponse{
			ID:       sess.AccountID,
			Username: sess.Username,
			Email:    sess.Email,
			Role:     sess.Role,
			Phone:    sess.Phone,
			Address:  sess.Address,
			Photo:    sess.Photo,
		}, nil
	}

	account, err := s.accountRepo.FindById(ctx, sess.AccountID)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if account == nil {
		// Row vanished under the session, e.g. deleted by an admin; the
		// caller reacts by forcing a logout.
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	return response_models.FromAccount(account), nil
}

func (s *ProfileService) UpdateContactInfo(ctx context.Context, sess *mem.Session, phone, address string) error {

	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)

	if !sess.Superuser {
		if err := s.accountRepo.UpdateContact(ctx, sess.AccountID, phone, address); err != nil {
			return utils.ErrDatabaseError
		}
	}

	// For stored users the session is only a display cache, so a missed
	// mirror is harmless; for the superuser it is the record itself.
	ok := s.sessions.Update(sess.ID, func(stored *mem.Session) {
		stored.Phone = phone
		stored.Address = address
	})
	if sess.Superuser && !ok {
		return utils.ErrAccountNotFound
	}
	sess.Phone = phone
	sess.Address = address

	return nil
}

// requireAdmin re-reads the stored role for normal users instead of trusting
// the session snapshot, which can lag behind the store.
func (s *ProfileService) requireAdmin(ctx context.Context, sess *mem.Session) error {
	if sess.Superuser {
		return nil
	}

	account, err := s.accountRepo.FindById(ctx, sess.AccountID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}
	if account.Role != "admin" {
		return utils.ErrForbidden
	}
	return nil
}

func (s *ProfileService) ListAccounts(ctx context.Context, sess *mem.Session) (response_models.DashboardResponse, error) {

	if err := s.requireAdmin(ctx, sess); err != nil {
		return response_models.DashboardResponse{}, err
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return response_models.DashboardResponse{}, utils.ErrDatabaseError
	}

	resp := response_models.DashboardResponse{
		Accounts:   make([]response_models.AccountResponse, 0, len(accounts)),
		TotalUsers: len(accounts),
	}
	for i := range accounts {
		if accounts[i].Photo != nil {
			resp.UsersWithPhotos++
		}
		resp.Accounts = append(resp.Accounts, response_models.FromAccount(&accounts[i]))
	}

	return resp, nil
}

func (s *ProfileService) DeleteAccount(ctx context.Context, sess *mem.Session, targetID string) error {

	if err := s.requireAdmin(ctx, sess); err != nil {
		return err
	}

	target, err := s.accountRepo.FindById(ctx, targetID)
	if err != nil {
		return utils.ErrDatabaseError
	}

	// File cleanup first: if the row delete fails the reference still
	// exists, whereas the reverse order would strand the file for good.
	if target != nil && target.Photo != nil && s.photos.Exists(*target.Photo) {
		if err := s.photos.Remove(*target.Photo); err != nil {
			log.Printf("Error removing photo for account %s: %v", targetID, err)
		}
	}

	if err := s.accountRepo.Delete(ctx, targetID); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}
