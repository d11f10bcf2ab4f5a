package usecase

import (
	"context"
	"errors"

	"kks-tracker/internal/domain/worker"
	"kks-tracker/internal/pkg/jwt"
	ucauth "kks-tracker/internal/usecase/auth"
)

type AuthUsecase interface {
	Login(ctx context.Context, in ucauth.LoginInput) (worker.Worker, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	workers worker.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(workers worker.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(workers), workers: workers, jwt: jwtSvc}
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (worker.Worker, string, string, error) {
	w, err := u.authSvc.Login(ctx, in)
	if err != nil {
		if errors.Is(err, ucauth.ErrInvalidCredentials) {
			return worker.Worker{}, "", "", ErrUnauthorized
		}
		return worker.Worker{}, "", "", ErrInternal
	}

	access, refresh, err := u.issue(w)
	if err != nil {
		return worker.Worker{}, "", "", err
	}
	return w, access, refresh, nil
}

// Refresh rotates both tokens. The role is re-read from storage so a demoted
// worker does not keep admin rights until the refresh token expires.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	w, err := u.workers.GetByID(ctx, claims.WorkerID)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return u.issue(w)
}

func (u *Auth) issue(w worker.Worker) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(w.ID, w.Login, int16(w.Role))
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(w.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}
