package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// HTTPAuthenticator is the controller's view of the authentication service.
type HTTPAuthenticator interface {
	Register(c *fiber.Ctx, req RegisterRequest) (*User, error)
	Login(c *fiber.Ctx, email, password string) (string, *User, error)
}

// HTTPResolver is the controller's view of the authorization gate.
type HTTPResolver interface {
	ResolveIdentity(c *fiber.Ctx, raw string) (*User, error)
}

// fiberAuther adapts Auther to fiber handlers.
type fiberAuther struct {
	auther *Auther
}

func (f fiberAuther) Register(c *fiber.Ctx, req RegisterRequest) (*User, error) {
	return f.auther.Register(c.UserContext(), req)
}

func (f fiberAuther) Login(c *fiber.Ctx, email, password string) (string, *User, error) {
	return f.auther.Login(c.UserContext(), email, password)
}

// fiberResolver adapts IdentityResolver to fiber handlers.
type fiberResolver struct {
	resolver *IdentityResolver
}

func (f fiberResolver) ResolveIdentity(c *fiber.Ctx, raw string) (*User, error) {
	return f.resolver.ResolveIdentity(c.UserContext(), raw)
}

// AuthControllerRoutes are the mount points for the JSON endpoints.
type AuthControllerRoutes struct {
	Register string
	Login    string
	Me       string
}

type AuthController struct {
	Logger   Logger
	Auther   HTTPAuthenticator
	Resolver HTTPResolver
	Routes   *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

// WithAuther wires the authentication service into the controller.
func WithAuther(a *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = fiberAuther{auther: a}
		return c
	}
}

// WithResolver wires the authorization gate into the controller.
func WithResolver(r *IdentityResolver) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Resolver = fiberResolver{resolver: r}
		return c
	}
}

// WithControllerLogger replaces the controller's default logger.
func WithControllerLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register: "/register",
			Login:    "/login",
			Me:       "/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	if c.Resolver == nil {
		panic("Missing HTTPResolver in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the register, login, and me endpoints.
func RegisterAuthRoutes(app *fiber.App, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost).
		Name("register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		Name("sign-in.post")

	app.Get(controller.Routes.Me, controller.RequireAuth, controller.MeShow).
		Name("me.get")

	return controller
}

// RegisterPost creates a new account and returns the sanitized record.
func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register: parse payload: %v", err)
		return a.renderError(c, ErrUnableToParseBody)
	}

	user, err := a.Auther.Register(c, *payload)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

// LoginPost verifies credentials and returns a bearer token with the user.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login: parse payload: %v", err)
		return a.renderError(c, ErrUnableToParseBody)
	}

	token, user, err := a.Auther.Login(c, payload.Email, payload.Password)
	if err != nil {
		return a.renderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// RequireAuth resolves the bearer token and stores the user in both Locals
// and the request context for downstream handlers.
func (a *AuthController) RequireAuth(c *fiber.Ctx) error {
	user, err := a.Resolver.ResolveIdentity(c, BearerToken(c))
	if err != nil {
		return a.renderError(c, err)
	}

	c.Locals("user", user)
	c.SetUserContext(WithContext(c.UserContext(), user))

	return c.Next()
}

// MeShow returns the authenticated user.
func (a *AuthController) MeShow(c *fiber.Ctx) error {
	user, _ := c.Locals("user").(*User)
	if user == nil {
		return a.renderError(c, ErrAuthorizationRequired)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": user,
	})
}

// BearerToken extracts the token from the Authorization header. Returns the
// empty string when the header is absent or not a bearer scheme.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)

	const scheme = "Bearer"
	l := len(scheme)

	if len(header) > l+1 && strings.EqualFold(header[:l], scheme) && header[l] == ' ' {
		return strings.TrimSpace(header[l+1:])
	}

	return ""
}

// renderError maps errors to the {"error": message} body. Anything without a
// code is treated as unexpected: logged in full, reported generically.
func (a *AuthController) renderError(c *fiber.Ctx, err error) error {
	var rich *errors.Error
	if errors.As(err, &rich) && rich.Code != 0 {
		return c.Status(rich.Code).JSON(fiber.Map{
			"error": rich.Message,
		})
	}

	a.Logger.Error("unhandled error: %v", err)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": ErrServerError.Message,
	})
}
