package sqlite

import (
	"context"
	"encoding/json"

	"shoplocal/internal/domain/entity"
	"shoplocal/internal/domain/repository"
	"shoplocal/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Load returns the persisted session, or ErrSessionNotFound.
func (repo *sessionRepository) Load(ctx context.Context) (*entity.Session, error) {
	var sessionM model.SessionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", model.SingletonID).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	var user entity.User
	if err := json.Unmarshal(sessionM.UserJSON, &user); err != nil {
		// A corrupt row is equivalent to no session; the caller falls back to
		// signed-out state.
		return nil, repository.ErrSessionNotFound
	}

	return &entity.Session{
		Token:          sessionM.Token,
		User:           &user,
		LoginMethod:    entity.LoginMethod(sessionM.LoginMethod),
		SocialProvider: sessionM.SocialProvider,
	}, nil
}

// Save persists the session, replacing any previous one.
func (repo *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	if session == nil || session.User == nil {
		return errors.New("cannot save an empty session")
	}

	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return errors.Wrap(err, "failed to encode session user")
	}

	sessionM := model.SessionModel{
		ID:             model.SingletonID,
		Token:          session.Token,
		UserJSON:       userJSON,
		LoginMethod:    string(session.LoginMethod),
		SocialProvider: session.SocialProvider,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&sessionM).Error; err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// Clear removes the session and any stored credentials unconditionally.
func (repo *sessionRepository) Clear(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("id = ?", model.SingletonID).
		Delete(&model.SessionModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear session")
	}

	if err := repo.db.WithContext(ctx).
		Where("id = ?", model.SingletonID).
		Delete(&model.CredentialModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear credentials")
	}

	return nil
}

// SaveCredentials stores the sealed Basic credentials.
func (repo *sessionRepository) SaveCredentials(ctx context.Context, sealed []byte) error {
	if len(sealed) == 0 {
		return errors.New("cannot save empty credentials")
	}

	credM := model.CredentialModel{ID: model.SingletonID, Sealed: sealed}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&credM).Error; err != nil {
		return errors.Wrap(err, "failed to save credentials")
	}

	return nil
}

// LoadCredentials returns the sealed credentials, or ErrCredentialsNotFound.
func (repo *sessionRepository) LoadCredentials(ctx context.Context) ([]byte, error) {
	var credM model.CredentialModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", model.SingletonID).
		First(&credM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialsNotFound
		}

		return nil, errors.Wrap(err, "failed to load credentials")
	}

	return credM.Sealed, nil
}
