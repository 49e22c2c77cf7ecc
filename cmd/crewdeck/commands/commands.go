package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crewdeck/crewdeck/internal/adapters/rest"
	"github.com/crewdeck/crewdeck/internal/application/forms"
	"github.com/crewdeck/crewdeck/internal/application/views"
	"github.com/crewdeck/crewdeck/internal/devserver"
	"github.com/crewdeck/crewdeck/internal/infrastructure/config"
	"github.com/crewdeck/crewdeck/internal/infrastructure/logger"
	"github.com/crewdeck/crewdeck/internal/infrastructure/session"
	"github.com/crewdeck/crewdeck/internal/ports"
)

// app bundles the wired client stack every command runs against.
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	session *session.Store
	client  *rest.Client
	deps    views.Deps
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	sessionStore, err := session.Open(cfg.Session.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sessionStore, appLogger)

	return &app{
		cfg:     cfg,
		logger:  appLogger,
		session: sessionStore,
		client:  client,
		deps:    views.NewDeps(client, sessionStore, appLogger),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Close()
}

// run wires the app, executes fn and reports its error through the
// standard exit path.
func run(fn func(a *app, ctx context.Context) error) {
	a, err := newApp()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.API.Timeout)
	defer cancel()

	if err := fn(a, ctx); err != nil {
		a.logger.Errorw("Command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRegisterCommand creates the register command
func NewRegisterCommand() *cobra.Command {
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			surname, _ := cmd.Flags().GetString("surname")
			mail, _ := cmd.Flags().GetString("mail")
			password, _ := cmd.Flags().GetString("password")
			phone, _ := cmd.Flags().GetString("phone")

			run(func(a *app, ctx context.Context) error {
				form := forms.RegisterForm{
					Name:     name,
					Surname:  surname,
					Mail:     mail,
					Password: password,
					Phone:    phone,
				}
				if errs := forms.Validate(form); errs != nil {
					printFieldErrors(errs)
					return fmt.Errorf("registration form is invalid")
				}

				err := a.client.Register(ctx, ports.RegisterRequest{
					Name:     form.Name,
					Surname:  form.Surname,
					Mail:     form.Mail,
					Password: form.Password,
					Phone:    form.Phone,
				})
				if err != nil {
					return err
				}

				fmt.Println("Account created. Sign in with: crewdeck login")
				return nil
			})
		},
	}

	registerCmd.Flags().String("name", "", "First name (required)")
	registerCmd.Flags().String("surname", "", "Surname (required)")
	registerCmd.Flags().String("mail", "", "Mail address (required)")
	registerCmd.Flags().String("password", "", "Password, 6 characters minimum (required)")
	registerCmd.Flags().String("phone", "", "Phone number (required)")

	return registerCmd
}

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Run: func(cmd *cobra.Command, args []string) {
			mail, _ := cmd.Flags().GetString("mail")
			password, _ := cmd.Flags().GetString("password")

			run(func(a *app, ctx context.Context) error {
				form := forms.LoginForm{Mail: mail, Password: password}
				if errs := forms.Validate(form); errs != nil {
					printFieldErrors(errs)
					return fmt.Errorf("login form is invalid")
				}

				resp, err := a.client.Login(ctx, ports.LoginRequest{Mail: form.Mail, Password: form.Password})
				if err != nil {
					return err
				}

				if err := a.session.SetSession(resp.Token, resp.UserID, resp.Role); err != nil {
					return fmt.Errorf("failed to persist session: %w", err)
				}

				a.logger.LogSessionEvent("login", resp.UserID, string(resp.Role))
				fmt.Printf("Signed in as user %d (%s)\n", resp.UserID, resp.Role)
				return nil
			})
		},
	}

	loginCmd.Flags().String("mail", "", "Mail address (required)")
	loginCmd.Flags().String("password", "", "Password (required)")

	return loginCmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				userID, _ := a.session.UserID()
				if err := a.session.Clear(); err != nil {
					return fmt.Errorf("failed to clear session: %w", err)
				}

				a.logger.LogSessionEvent("logout", userID, "")
				fmt.Println("Signed out.")
				return nil
			})
		},
	}
}

// NewOpenCommand creates the open command: it resolves a dashboard
// route by path and renders the matching page.
func NewOpenCommand() *cobra.Command {
	openCmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Open a dashboard page by its route path",
		Long:  "Open a dashboard page by its route path, e.g. /home, /projeler, /gorevler, /calisanlar, /calisanlar/details/3, /profil.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			run(func(a *app, ctx context.Context) error {
				return openRoute(a, ctx, args[0])
			})
		},
	}

	return openCmd
}

func openRoute(a *app, ctx context.Context, path string) error {
	route, id, ok := views.Match(path)
	if !ok {
		printSidebar()
		return fmt.Errorf("no page at %q", path)
	}

	if route.Protected {
		if _, signedIn := a.session.Token(); !signedIn {
			fmt.Println("Not signed in; redirecting to login.")
			fmt.Println("Use: crewdeck login --mail <mail> --password <password>")
			return nil
		}
	}

	switch route.Name {
	case "register":
		fmt.Println("Use: crewdeck register --name <name> --surname <surname> --mail <mail> --password <password> --phone <phone>")
		return nil
	case "login":
		fmt.Println("Use: crewdeck login --mail <mail> --password <password>")
		return nil
	case "home":
		return renderHome(a, ctx)
	case "projects":
		return renderProjects(a, ctx)
	case "tasks":
		return renderTasks(a, ctx)
	case "users":
		return renderUsers(a, ctx)
	case "user-details":
		return renderUserDetails(a, ctx, id)
	case "profile":
		return renderProfile(a, ctx)
	default:
		return fmt.Errorf("no page at %q", path)
	}
}

// NewDevServerCommand creates the devserver command
func NewDevServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "devserver",
		Short: "Run the in-memory reference backend",
		Long:  "Run the in-memory reference backend the dashboard client can be pointed at for local development.",
		Run: func(cmd *cobra.Command, args []string) {
			runDevServer()
		},
	}
}

func runDevServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv := devserver.New(cfg.DevServer, appLogger)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Errorw("Devserver stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Devserver shutdown failed", "error", err)
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Crewdeck version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Crewdeck v1.0.0")
		},
	}
}

func printFieldErrors(errs forms.FieldErrors) {
	for field, msg := range errs {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
	}
}

func printSidebar() {
	fmt.Println("Available pages:")
	for _, route := range views.Sidebar() {
		fmt.Printf("  %-30s %s\n", route.Path, route.Name)
	}
}
