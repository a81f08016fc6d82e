package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const minPasswordLen = 8

// WelcomeMailer greets newly registered users.
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
}

type UserService struct {
	db     *gorm.DB
	mailer WelcomeMailer
	log    logrus.FieldLogger
}

func NewUserService(db *gorm.DB, mailer WelcomeMailer, log logrus.FieldLogger) *UserService {
	return &UserService{db: db, mailer: mailer, log: log}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", invalid("invalid email %q", email)
	}
	return email, nil
}

// Register creates a user with a bcrypt-hashed password. A taken email is
// apperr.ErrConflict.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, invalid("password must be at least %d characters", minPasswordLen)
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, dbError(err, "check email")
	}
	if n > 0 {
		return nil, fmt.Errorf("user with email %s already exists: %w", email, apperr.ErrConflict)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Email: email, Password: hashed, Name: strings.TrimSpace(name)}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, dbError(err, "create user")
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("welcome email")
		}
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, dbError(err, fmt.Sprintf("user %d", id))
	}
	return &u, nil
}

type ProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if email != u.Email {
			var n int64
			if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
				return nil, dbError(err, "check email")
			}
			if n > 0 {
				return nil, fmt.Errorf("email %s is taken: %w", email, apperr.ErrConflict)
			}
		}
		u.Email = email
	}
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, dbError(err, "update profile")
	}
	return u, nil
}

// List returns every user; passwords never leave the model.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, dbError(err, "list users")
	}
	return users, nil
}

// Delete removes the user and everything they logged.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Delete(&models.User{}, id)
		if res.Error != nil {
			return dbError(res.Error, "delete user")
		}
		if res.RowsAffected == 0 {
			return dbError(gorm.ErrRecordNotFound, fmt.Sprintf("user %d", id))
		}
		for _, m := range []any{&models.FoodLog{}, &models.DailyGoal{}, &models.DailyProgress{}, &models.Alert{}, &models.UserDevice{}} {
			if err := tx.Unscoped().Where("user_id = ?", id).Delete(m).Error; err != nil {
				return dbError(err, "delete user data")
			}
		}
		return nil
	})
}

// AuthService exchanges credentials for signed tokens.
type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{db: db, secret: []byte(secret), ttl: ttl}
}

type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

var errBadCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)

// Authenticate checks the password and issues an HS256 token. Unknown
// emails and wrong passwords fail the same way.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, dbError(err, "find user")
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return nil, errBadCredentials
	}

	token, err := utils.GenerateJWT(s.secret, u.ID, u.Email, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: time.Now().Add(s.ttl).UTC(), User: &u}, nil
}
