package views

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/agrihub/storefront/internal/api"
	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/nav"
	"github.com/agrihub/storefront/internal/store"
	"github.com/go-playground/validator/v10"
)

// AuthView handles login and registration. On success the session store is
// updated and the navigator moves to home.
type AuthView struct {
	client    *api.Client
	sessions  *store.SessionStore
	navigator *nav.Navigator
	logger    *slog.Logger
	validator *validator.Validate
}

func NewAuthView(client *api.Client, sessions *store.SessionStore, navigator *nav.Navigator, logger *slog.Logger) *AuthView {
	return &AuthView{
		client:    client,
		sessions:  sessions,
		navigator: navigator,
		logger:    logger,
		validator: validator.New(),
	}
}

func (v *AuthView) Render(ctx context.Context, w io.Writer, params nav.Params) error {

	fmt.Fprintln(w, "Log in to AgriHub")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  login <email> <password>")
	fmt.Fprintln(w, "  register <username> <email> <password> <confirm-password>")

	return nil
}

func (v *AuthView) Login(ctx context.Context, w io.Writer, email, password string) error {

	req := &models.LoginRequest{Email: email, Password: password}

	if err := validate(w, v.validator, req); err != nil {
		return err
	}

	sess, err := v.client.Login(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	v.sessions.Login(ctx, *sess)
	v.navigator.Navigate(nav.ViewHome, nil)

	v.logger.Info("user logged in", slog.String("username", sess.Username), slog.String("role", string(sess.Role)))

	fmt.Fprintf(w, "Welcome back, %s!\n", sess.Username)

	return nil
}

func (v *AuthView) Register(ctx context.Context, w io.Writer, username, email, password, confirm string) error {

	req := &models.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}

	if err := validate(w, v.validator, req); err != nil {
		return err
	}

	sess, err := v.client.Register(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	v.sessions.Login(ctx, *sess)
	v.navigator.Navigate(nav.ViewHome, nil)

	v.logger.Info("user registered", slog.String("username", sess.Username))

	fmt.Fprintf(w, "Welcome to AgriHub, %s!\n", sess.Username)

	return nil
}

// Logout clears the session and returns to home, matching the header
// button. Valid while already logged out.
func (v *AuthView) Logout(ctx context.Context, w io.Writer) {

	v.sessions.Logout(ctx)
	v.navigator.Navigate(nav.ViewHome, nil)

	fmt.Fprintln(w, "Logged out.")
}
