package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/infra/auth"
	"github.com/espectro-app/espectro/infra/config"
	"github.com/espectro-app/espectro/infra/gateway"
)

func newLoginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			env, err := open(cfg, auth.NewFileStore(cfg.SessionPath))
			if err != nil {
				return err
			}
			defer env.close()

			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			creds := domain.Credentials{Email: strings.TrimSpace(email), Password: password}
			if err := creds.Validate(); err != nil {
				return err
			}
			user, err := env.login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := auth.NewFileStore(cfg.SessionPath).Clear(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

// readPassword takes ESPECTRO_PASSWORD when set, prompts without echo on a
// terminal, and reads one line otherwise.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if pw, ok := os.LookupEnv("ESPECTRO_PASSWORD"); ok {
		return pw, nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// login exchanges creds for a token and starts the session with it.
func (e *environment) login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	token, user, err := gateway.NewAuthService(e.client).Login(ctx, creds)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return domain.User{}, errors.New("login: wrong email or password")
		}
		return domain.User{}, fmt.Errorf("login: %w", err)
	}
	if err := e.session.Start(token, user); err != nil {
		return domain.User{}, fmt.Errorf("starting session: %w", err)
	}
	u, _ := e.session.User()
	return u, nil
}
