package services

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"portal/internal/config"
	"portal/internal/models/db_models"
	"portal/internal/repositories"
	mem "portal/pkg/memcache"
	"portal/pkg/utils"
)

// The superuser is a fixed local credential with no backing account row; its
// session is created directly and never touches the store.
const (
	superuserName     = "admin"
	superuserPassword = "admin123"
	superuserEmail    = "admin@admin.com"
)

var (
	emailPattern    = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

type IdentityServiceInterface interface {
	Register(ctx context.Context, username, password, email string) (*db_models.Account, error)
	Login(ctx context.Context, username, password string) (*mem.Session, string, error)
	Logout(sessionID string)
}

type IdentityService struct {
	accountRepo repositories.AccountRepository
	sessions    mem.SessionStore
	secret      []byte
	sessionTTL  time.Duration
}

func NewIdentityService(accountRepo repositories.AccountRepository, sessions mem.SessionStore, cfg *config.Config) IdentityServiceInterface {
	return &IdentityService{
		accountRepo: accountRepo,
		sessions:    sessions,
		secret:      []byte(cfg.SecretKey),
		sessionTTL:  cfg.SessionTTL,
	}
}

func (s *IdentityService) Register(ctx context.Context, username, password, email string) (*db_models.Account, error) {

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	email = strings.TrimSpace(email)

	if username == "" || password == "" || email == "" {
		return nil, utils.ErrMissingField
	}
	if !emailPattern.MatchString(email) {
		return nil, utils.ErrInvalidEmail
	}
	if !usernamePattern.MatchString(username) {
		return nil, utils.ErrInvalidUsername
	}

	existing, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return nil, utils.ErrDatabaseError
	}

	account := &db_models.Account{
		Username:     username,
		PasswordHash: hashed,
		Email:        email,
		Role:         "user",
		Phone:        "",
		Address:      "",
		Photo:        nil,
	}

	if err := s.accountRepo.Insert(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return account, nil
}

func (s *IdentityService) Login(ctx context.Context, username, password string) (*mem.Session, string, error) {

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == superuserName && password == superuserPassword {
		sess := &mem.Session{
			ID:        uuid.New().String(),
			AccountID: "",
			Username:  superuserName,
			Role:      "admin",
			Email:     superuserEmail,
			Phone:     "",
			Address:   "",
			Photo:     "",
			LoggedIn:  true,
			Superuser: true,
		}
		return s.issue(sess)
	}

	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", utils.ErrDatabaseError
	}

	// Same error for unknown user and wrong password, so usernames cannot
	// be enumerated through login.
	if account == nil {
		return nil, "", utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, password); err != nil {
		return nil, "", utils.ErrInvalidCredentials
	}

	role := account.Role
	if role == "" {
		role = "user"
	}
	photo := ""
	if account.Photo != nil {
		photo = *account.Photo
	}

	sess := &mem.Session{
		ID:        uuid.New().String(),
		AccountID: account.ID.String(),
		Username:  account.Username,
		Role:      role,
		Email:     account.Email,
		Phone:     account.Phone,
		Address:   account.Address,
		Photo:     photo,
		LoggedIn:  true,
		Superuser: false,
	}
	return s.issue(sess)
}

func (s *IdentityService) issue(sess *mem.Session) (*mem.Session, string, error) {
	token, err := utils.CreateToken(sess.ID, sess.Role, s.secret, s.sessionTTL)
	if err != nil {
		log.Printf("Error signing session token: %v", err)
		return nil, "", utils.ErrDatabaseError
	}
	s.sessions.Put(sess, s.sessionTTL)
	return sess, token, nil
}

func (s *IdentityService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}
