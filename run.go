package main

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/espectro-app/espectro/domain"
	"github.com/espectro-app/espectro/infra/auth"
	"github.com/espectro-app/espectro/infra/config"
	"github.com/espectro-app/espectro/infra/editor"
	"github.com/espectro-app/espectro/infra/gateway"
	"github.com/espectro-app/espectro/infra/logging"
	"github.com/espectro-app/espectro/infra/sandbox"
	"github.com/espectro-app/espectro/interaction"
	"github.com/espectro-app/espectro/tui"
)

// environment is the process-wide wiring shared by every command.
type environment struct {
	cfg      config.Config
	logger   *zap.Logger
	closeLog func() error
	session  *auth.Session
	client   *gateway.Client
	notices  *interaction.NoticeLog
}

func loadDotEnv(path string) error {
	if err := config.LoadDotEnv(path); err != nil {
		return fmt.Errorf("env file: %w", err)
	}
	return nil
}

func open(cfg config.Config, store auth.Store) (*environment, error) {
	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	session, err := auth.NewSession(store, logger)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("session: %w", err)
	}
	notices := interaction.NewNoticeLog()
	session.OnLogout(func() {
		notices.Notify(interaction.Notice{Level: interaction.LevelError, Text: "Session expired. Run `espectro login` to sign in again."})
	})
	client := gateway.NewClient(cfg.APIURL, session,
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithRateLimit(cfg.RateLimit),
		gateway.WithUnauthorizedHook(func() {
			if err := session.Logout(); err != nil {
				logger.Warn("logout after 401", zap.Error(err))
			}
		}),
		gateway.WithLogger(logger),
	)
	return &environment{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		session:  session,
		client:   client,
		notices:  notices,
	}, nil
}

func (e *environment) close() {
	_ = e.closeLog()
}

func runApp(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	env, err := open(cfg, auth.NewFileStore(cfg.SessionPath))
	if err != nil {
		return err
	}
	defer env.close()

	if !env.session.Valid() {
		return errors.New("not signed in: run `espectro login --email <you>` or try `espectro demo`")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := gateway.NewAuthService(env.client).Me(ctx); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return errors.New("session expired: run `espectro login` again")
		}
		env.logger.Warn("checking session", zap.Error(err))
	}
	return env.runTUI()
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Browse a local sandbox with demo content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			srv := httptest.NewServer(sandbox.New().Handler())
			defer srv.Close()
			cfg.APIURL = srv.URL

			dir, err := os.MkdirTemp("", "espectro-demo-")
			if err != nil {
				return fmt.Errorf("demo session: %w", err)
			}
			defer os.RemoveAll(dir)

			env, err := open(cfg, auth.NewFileStore(filepath.Join(dir, "session")))
			if err != nil {
				return err
			}
			defer env.close()

			creds := domain.Credentials{Email: sandbox.DemoEmail, Password: sandbox.DemoPassword}
			if _, err := env.login(cmd.Context(), creds); err != nil {
				return err
			}
			return env.runTUI()
		},
	}
}

func (e *environment) runTUI() error {
	state, err := config.LoadUIState(e.cfg.UIStatePath)
	if err != nil {
		e.logger.Warn("load ui state", zap.Error(err))
	}
	user, _ := e.session.User()

	root := tui.NewApp(tui.Deps{
		Content:      gateway.NewContentService(e.client),
		Interactions: gateway.NewInteractionService(e.client),
		Comments:     gateway.NewCommentService(e.client),
		Profiles:     gateway.NewProfileService(e.client),
		Editor:       editor.NewEnvEditor(),
		Notices:      e.notices,
		Logger:       e.logger,
		User:         user,
		State:        state,
		SaveState: func(st config.UIState) error {
			return config.SaveUIState(e.cfg.UIStatePath, st)
		},
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
