package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"portal/internal/config"
	"portal/internal/repositories"
	mem "portal/pkg/memcache"
	"portal/pkg/utils"
)

const (
	avatarSize    = 300
	avatarQuality = 85
)

type PhotoServiceInterface interface {
	// UpdatePhoto runs the full avatar pipeline: validate the declared
	// filename, decode, center-crop to a square, resize to 300x300,
	// re-encode as JPEG, store the file and swap the photo reference.
	UpdatePhoto(ctx context.Context, sess *mem.Session, declaredName string, file io.Reader) (string, error)
}

type PhotoService struct {
	accountRepo repositories.AccountRepository
	photos      repositories.PhotoStore
	sessions    mem.SessionStore
	allowedExts map[string]bool
}

func NewPhotoService(accountRepo repositories.AccountRepository, photos repositories.PhotoStore, sessions mem.SessionStore, cfg *config.Config) PhotoServiceInterface {
	allowed := make(map[string]bool, len(cfg.AllowedExts))
	for _, ext := range cfg.AllowedExts {
		allowed[strings.ToLower(ext)] = true
	}
	return &PhotoService{
		accountRepo: accountRepo,
		photos:      photos,
		sessions:    sessions,
		allowedExts: allowed,
	}
}

// allowedFile checks the declared filename suffix only; file content is not
// sniffed, matching the accepted-input policy of the upload form.
func (s *PhotoService) allowedFile(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	return s.allowedExts[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

func (s *PhotoService) UpdatePhoto(ctx context.Context, sess *mem.Session, declaredName string, file io.Reader) (string, error) {

	if declaredName == "" || file == nil {
		return "", utils.ErrNoFile
	}
	if !s.allowedFile(declaredName) {
		return "", utils.ErrUnsupportedFormat
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: decoding image: %v", utils.ErrPhotoProcessing, err)
	}

	// Normalize to one color model so every source format ends up as the
	// same kind of JPEG.
	normalized := imaging.Clone(img)

	bounds := normalized.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	cropped := imaging.CropCenter(normalized, side, side)
	resized := imaging.Resize(cropped, avatarSize, avatarSize, imaging.Lanczos)

	// The stored name is derived from trusted identity plus the server
	// clock, never from the uploaded filename.
	filename := fmt.Sprintf("%s_%s.jpg", sess.Username, time.Now().Format("20060102_150405"))

	err = s.photos.Write(filename, func(w io.Writer) error {
		return imaging.Encode(w, resized, imaging.JPEG, imaging.JPEGQuality(avatarQuality))
	})
	if err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", utils.ErrPhotoProcessing, filename, err)
	}

	// New file is durable; now commit the reference, then drop the old file.
	var oldPhoto string
	if sess.Superuser {
		// The superuser session is the system of record; if it expired
		// under us there is nothing to commit the reference to.
		ok := s.sessions.Update(sess.ID, func(stored *mem.Session) {
			oldPhoto = stored.Photo
			stored.Photo = filename
		})
		if !ok {
			s.discard(filename)
			return "", utils.ErrAccountNotFound
		}
	} else {
		account, err := s.accountRepo.FindById(ctx, sess.AccountID)
		if err != nil {
			s.discard(filename)
			return "", utils.ErrDatabaseError
		}
		if account == nil {
			s.discard(filename)
			return "", utils.ErrAccountNotFound
		}
		if account.Photo != nil {
			oldPhoto = *account.Photo
		}

		if err := s.accountRepo.UpdatePhoto(ctx, sess.AccountID, filename); err != nil {
			s.discard(filename)
			return "", utils.ErrDatabaseError
		}

		s.sessions.Update(sess.ID, func(stored *mem.Session) {
			stored.Photo = filename
		})
	}
	sess.Photo = filename

	if oldPhoto != "" && oldPhoto != filename && s.photos.Exists(oldPhoto) {
		if err := s.photos.Remove(oldPhoto); err != nil {
			log.Printf("Error removing previous photo %s: %v", oldPhoto, err)
		}
	}

	return filename, nil
}

// discard drops a freshly written file when the reference swap fails, so a
// half-finished update never leaves an unreferenced avatar behind.
func (s *PhotoService) discard(filename string) {
	if err := s.photos.Remove(filename); err != nil {
		log.Printf("Error discarding photo %s: %v", filename, err)
	}
}
