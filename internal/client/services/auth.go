// Package services contains application services for the devlog client.
// This file defines the authentication service: login by username or e-mail,
// registration, and logout.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/dmitrijs2005/devlog/internal/common"
)

const (
	MsgLoginFailed    = "Login failed"
	MsgRegisterFailed = "Register failed"
	MsgRegistered     = "Registered - you can login"
)

var ErrNoToken = errors.New("login response carries no access token")

// AuthAPI is the part of the API client used for authentication.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
}

// SessionWriter is where a successful login is recorded.
type SessionWriter interface {
	Set(ctx context.Context, token, username string) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate with a username or e-mail and store the session.
//     Returns the display username.
//   - Register: create an account; returns the confirmation text to show.
//   - Logout: forget the stored session.
//
// Password slices are wiped once the request has been built.
type AuthService interface {
	Login(ctx context.Context, identifier string, password []byte) (string, error)
	Register(ctx context.Context, email, username string, password []byte) (string, error)
	Logout(ctx context.Context) error
}

type authService struct {
	api     AuthAPI
	session SessionWriter
}

func NewAuthService(api AuthAPI, session SessionWriter) AuthService {
	return &authService{api: api, session: session}
}

// LoginRequest sends identifier as "email" when it looks like an e-mail
// address and as "username" otherwise.
func LoginRequest(identifier string, password []byte) models.LoginRequest {
	req := models.LoginRequest{Password: string(password)}
	if common.IsEmail(identifier) {
		req.Email = identifier
	} else {
		req.Username = identifier
	}
	return req
}

func (a *authService) Login(ctx context.Context, identifier string, password []byte) (string, error) {
	req := LoginRequest(identifier, password)
	common.WipeByteArray(password)

	resp, err := a.api.Login(ctx, req)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}
	if resp.AccessToken == "" {
		return "", ErrNoToken
	}

	username := resp.Username
	if username == "" {
		username = identifier
	}

	if err := a.session.Set(ctx, resp.AccessToken, username); err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	return username, nil
}

func (a *authService) Register(ctx context.Context, email, username string, password []byte) (string, error) {
	req := models.RegisterRequest{Email: email, Username: username, Password: string(password)}
	common.WipeByteArray(password)

	if _, err := a.api.Register(ctx, req); err != nil {
		return "", fmt.Errorf("register error: %w", err)
	}
	return MsgRegistered, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}
