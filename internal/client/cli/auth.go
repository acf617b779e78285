package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
	"github.com/dmitrijs2005/genzclient/internal/client/session"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'register' first")

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	handle, err := getSimpleText(a.reader, "Choose a handle", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	return a.authenticate(ctx, session.Credentials{Email: email, Password: password, Handle: handle, Mode: session.ModeRegister})
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	return a.authenticate(ctx, session.Credentials{Email: email, Password: password, Mode: session.ModeLogin})
}

func (a *App) authenticate(ctx context.Context, c session.Credentials) error {
	p, err := a.session.Authenticate(ctx, c)
	if err != nil {
		if msg := a.session.Snapshot().Err; msg != "" {
			return errors.New(msg)
		}
		return err
	}
	fmt.Fprintf(a.out, "Signed in as @%s\n", p.Handle)
	return nil
}

// Logout forgets the session on this machine only.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	p, err := a.session.Refresh(ctx)
	if errors.Is(err, session.ErrNoRefreshToken) {
		return errNotLoggedIn
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Session refreshed for @%s\n", p.Handle)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	p, err := a.conn.API.Profiles.Me(ctx)
	if err != nil {
		return err
	}
	printProfile(a.out, p)
	return nil
}

// EditProfile prompts for each editable field. A blank answer leaves the
// field unchanged.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	var u api.ProfileUpdate
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Bio (blank keeps current)", &u.Bio},
		{"Persona tag (blank keeps current)", &u.PersonaTag},
		{"Accent color (blank keeps current)", &u.AccentColor},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}
	if u.Bio == nil && u.PersonaTag == nil && u.AccentColor == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	p, err := a.conn.API.Profiles.Update(ctx, u)
	if err != nil {
		return err
	}
	a.session.SetProfile(*p)
	printProfile(a.out, p)
	return nil
}

func printProfile(w io.Writer, p *api.Profile) {
	fmt.Fprintf(w, "@%s · %s\n", p.Handle, p.PersonaTag)
	if p.Bio != "" {
		fmt.Fprintln(w, p.Bio)
	}
	details := []string{fmt.Sprintf("streak %d", p.StreakCount)}
	if p.AccentColor != "" {
		details = append(details, "accent "+p.AccentColor)
	}
	if !p.CreatedAt.IsZero() {
		details = append(details, "joined "+p.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(w, strings.Join(details, ", "))
}
