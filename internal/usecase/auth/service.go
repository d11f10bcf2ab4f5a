package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kks-tracker/internal/domain/worker"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type LoginInput struct {
	Login    string
	Password string
}

type credentialStore interface {
	GetByLogin(ctx context.Context, login string) (worker.Worker, error)
}

type Service struct {
	workers credentialStore
}

func NewService(workers credentialStore) *Service {
	return &Service{workers: workers}
}

func (s *Service) Login(ctx context.Context, in LoginInput) (worker.Worker, error) {
	login := NormalizeLogin(in.Login)
	if login == "" || in.Password == "" {
		return worker.Worker{}, ErrInvalidCredentials
	}

	w, err := s.workers.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			return worker.Worker{}, ErrInvalidCredentials
		}
		return worker.Worker{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte(in.Password)); err != nil {
		return worker.Worker{}, ErrInvalidCredentials
	}

	return Sanitize(w), nil
}

func HashPassword(pw string) (string, error) {
	if strings.TrimSpace(pw) == "" {
		return "", ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrInternal
	}
	return string(hash), nil
}

// NormalizeLogin trims surrounding space. Logins are case sensitive.
func NormalizeLogin(login string) string {
	return strings.TrimSpace(login)
}

func Sanitize(w worker.Worker) worker.Worker {
	w.PasswordHash = ""
	return w
}
