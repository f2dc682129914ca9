package server

import (
	"errors"
	"fmt"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Server wires the HTTP surface over the auth core.
type Server struct {
	Debug   bool
	Logger  auth.Logger
	Repo    auth.RepositoryManager
	Auther  auth.Authenticator
	AuthCfg auth.Config

	svcAuth *auth.ServiceAuthorizer
	app     *fiber.App
}

type Option func(*Server) *Server

func WithDebug(debug bool) Option {
	return func(s *Server) *Server {
		s.Debug = debug
		return s
	}
}

func WithLogger(logger auth.Logger) Option {
	return func(s *Server) *Server {
		if logger != nil {
			s.Logger = logger
		}
		return s
	}
}

// New builds the HTTP server. Panics on missing dependencies; the process
// cannot serve anything without them.
func New(repo auth.RepositoryManager, auther auth.Authenticator, cfg auth.Config, opts ...Option) *Server {
	s := &Server{
		Logger:  auth.DefaultLogger(),
		Repo:    repo,
		Auther:  auther,
		AuthCfg: cfg,
	}

	for _, opt := range opts {
		s = opt(s)
	}

	if s.Repo == nil {
		panic("Missing RepositoryManager in server...")
	}

	if s.Auther == nil {
		panic("Missing Authenticator in server...")
	}

	if s.AuthCfg == nil {
		panic("Missing auth config in server...")
	}

	s.svcAuth = auth.NewServiceAuthorizer(s.AuthCfg)

	s.app = fiber.New(fiber.Config{
		AppName:      "exploree-auth",
		ErrorHandler: s.errorHandler,
	})

	s.registerRoutes()

	return s
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the given address.
func (s *Server) Listen(addr string) error {
	s.Logger.Info("listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	protected := s.Protected()
	adminOnly := s.RequireAdmin()

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.Register)
	authGroup.Post("/login", s.Login)
	authGroup.Post("/logout", s.Logout)
	authGroup.Delete("/login", s.Logout)
	authGroup.Post("/verify", s.VerifyToken)
	authGroup.Get("/verify", s.VerifyToken)
	authGroup.Get("/me", protected, s.Me)
	authGroup.Get("/profile", protected, s.GetProfile)
	authGroup.Patch("/profile", protected, s.UpdateProfile)

	waitlist := api.Group("/waitlist")
	waitlist.Post("/", s.JoinWaitlist)
	waitlist.Get("/count", s.WaitlistCount)

	admin := api.Group("/admin", protected, adminOnly)
	admin.Get("/users", s.AdminListUsers)
	admin.Post("/users", s.AdminCreateUser)
	admin.Get("/users/:id", s.AdminGetUser)
	admin.Patch("/users/:id", s.AdminUpdateUser)
	admin.Delete("/users/:id", s.AdminDeleteUser)
	admin.Get("/stats", s.AdminStats)
	admin.Get("/activity-logs", s.AdminActivityLogs)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// errorHandler maps categorized errors to their HTTP status and a plain
// {"error": message} body. Uncategorized errors become opaque 500s.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		status := richErr.Code
		if status < fiber.StatusBadRequest || status > 599 {
			status = fiber.StatusInternalServerError
		}

		if status >= fiber.StatusInternalServerError {
			s.Logger.Error("request failed: %s %s: %v", c.Method(), c.Path(), err)
		}

		if s.Debug {
			fmt.Println("======= REQUEST ERROR =======")
			fmt.Println(print.MaybePrettyJSON(richErr))
			fmt.Println("=============================")
		}

		return c.Status(status).JSON(fiber.Map{"error": richErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	s.Logger.Error("unhandled error: %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// validationError turns an ozzo validation failure into a 400 response.
func validationError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
		WithCode(goerrors.CodeBadRequest)
}

func badRequest(msg string) error {
	return goerrors.New(msg, goerrors.CategoryBadInput).
		WithCode(goerrors.CodeBadRequest)
}
