package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salestrack/app"
	"salestrack/config"
	"salestrack/database"
	"salestrack/mail"
	"salestrack/models"
	service "salestrack/services"
	"salestrack/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type cli struct {
	verbose bool
	envFile string

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "salestrack",
		Short: "Sales activity tracker API",
		Long: `salestrack records daily call commitments and end-of-day reports for a
sales team, keeps weekly and monthly rollups and serves the dashboard,
leaderboard and admin API.

Run without arguments to start the HTTP server.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: c.serve,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "optional dotenv file to load")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  c.serve,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the legacy flat collections into the per-user layout",
		Long: `Runs the four migration stages (users, commitments, reports, user_stats).
A failing stage is reported and the next one still runs. The migration adds
to existing weekly and monthly totals, so running it twice doubles them.`,
		RunE: c.migrate,
	}

	var admin models.CreateEmployeeRequest
	createAdminCmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin.Role = models.RoleAdmin
			return c.createAdmin(cmd, &admin)
		},
	}
	createAdminCmd.Flags().StringVar(&admin.Email, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&admin.Name, "name", "Admin", "display name")
	createAdminCmd.Flags().StringVar(&admin.Password, "password", "", "initial password (min 6 characters)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	root.AddCommand(serveCmd, migrateCmd, createAdminCmd)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return err
	}
	c.cfg = cfg

	zapConfig := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zapConfig = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.verbose {
		level = zapcore.DebugLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	c.logger, err = zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// open connects to the configured store and wires the services over it.
func (c *cli) open(ctx context.Context) (*app.App, database.DocumentStore, error) {
	store, err := database.Open(ctx, c.cfg, c.logger)
	if err != nil {
		return nil, nil, err
	}

	var mailer mail.Sender = mail.NewLogSender(c.logger.Named("mail"))
	if c.cfg.SMTPHost != "" {
		mailer = mail.NewSMTPSender(c.cfg.SMTPHost, c.cfg.SMTPPort, c.cfg.SMTPUsername, c.cfg.SMTPPassword, c.cfg.MailFrom)
	} else {
		c.logger.Warn("SMTP_HOST not set, password reset links are only logged")
	}

	a := app.New(store, app.Options{
		JWTSecret:      c.cfg.JWTSecret,
		TokenTTL:       c.cfg.TokenTTL,
		ResetURL:       c.cfg.PasswordResetURL,
		Location:       c.cfg.Location,
		AllowedOrigins: c.cfg.AllowedOrigins,
		Mailer:         mailer,
	}, c.logger)
	return a, store, nil
}

func (c *cli) closeStore(store database.DocumentStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		c.logger.Error("failed to close store", zap.Error(err))
	}
}

func (c *cli) serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, store, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer c.closeStore(store)

	srv := &http.Server{
		Addr:              ":" + c.cfg.Port,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("server starting", zap.String("port", c.cfg.Port), zap.String("store", c.cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (c *cli) migrate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, store, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer c.closeStore(store)

	out := cmd.OutOrStdout()
	log := service.NewMigrationLog(c.logger.Named("migration"), func(e service.LogEntry) {
		fmt.Fprintf(out, "%s %-5s %s\n", e.Time.Format(time.TimeOnly), e.Level, e.Message)
	})
	summary := a.Migration.Run(ctx, log)

	for _, stage := range summary.Stages {
		status := "ok"
		if stage.Error != "" {
			status = "error: " + stage.Error
		}
		fmt.Fprintf(out, "%-12s processed=%d skipped=%d %s\n", stage.Stage, stage.Processed, stage.Skipped, status)
	}
	return nil
}

func (c *cli) createAdmin(cmd *cobra.Command, req *models.CreateEmployeeRequest) error {
	if err := utils.Validate.Struct(req); err != nil {
		return fmt.Errorf("invalid admin account: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	a, store, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer c.closeStore(store)

	user, err := a.Employees.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.UID)
	return nil
}
