package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devlog/internal/client/services"
	"github.com/dmitrijs2005/devlog/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// cmdRegister prompts for email, username and password and creates the
// account. On success it continues straight to the login prompt.
func (a *App) cmdRegister(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.auth.Register(ctx, email, username, password)
	if err != nil {
		a.view.Error(failureText(err, services.MsgRegisterFailed))
		return err
	}

	a.view.Success(msg)
	return a.cmdLogin(ctx, nil)
}

// cmdLogin prompts for credentials, stores the session and opens the
// entries screen.
func (a *App) cmdLogin(ctx context.Context, _ []string) error {
	identifier, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	username, err := a.auth.Login(ctx, identifier, password)
	if err != nil {
		a.view.Error(failureText(err, services.MsgLoginFailed))
		return err
	}

	a.view.Success("Logged in as " + username)
	return a.showEntries(ctx)
}

func (a *App) cmdLogout(ctx context.Context, _ []string) error {
	a.entries.Reset()
	if err := a.auth.Logout(ctx); err != nil {
		a.view.Error("Error: " + err.Error())
		return err
	}
	a.view.Success("Logged out")
	return nil
}

// cmdWhoami prints the username and, when the token is a JWT, its subject
// and expiry as read from the unverified payload.
func (a *App) cmdWhoami(_ context.Context, _ []string) error {
	a.view.Println("Username:", a.session.Username())

	claims, err := a.session.Claims()
	if err != nil {
		a.view.Println("Token:   ", "opaque")
		return nil
	}

	if claims.Subject != "" {
		a.view.Println("Subject: ", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		state := "valid"
		if claims.Expired(time.Now()) {
			state = "expired"
		}
		a.view.Println("Expires: ", fmt.Sprintf("%s (%s)", claims.ExpiresAt.Local().Format(time.DateTime), state))
	}
	return nil
}
