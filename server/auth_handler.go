package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	auth "github.com/Exploree-Solutions/exploree-auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterPayload is the self-service signup body.
type RegisterPayload struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Company     string `json:"company"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 20)),
		validation.Field(&r.Company, validation.Length(0, 200)),
	)
}

func (s *Server) Register(c *fiber.Ctx) error {
	payload := new(RegisterPayload)

	if err := c.BodyParser(payload); err != nil {
		return badRequest("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	if s.Debug {
		fmt.Println("======= AUTH REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("============================")
	}

	handler := auth.NewRegisterUserHandler(s.Repo)
	user, err := handler.Execute(c.Context(), auth.RegisterUserMessage{
		FullName:    payload.FullName,
		Email:       payload.Email,
		Password:    payload.Password,
		PhoneNumber: payload.PhoneNumber,
		Company:     payload.Company,
	})
	if err != nil {
		return err
	}

	token, _, err := s.Auther.Login(c.Context(), user.Email, payload.Password)
	if err != nil {
		return err
	}

	s.recordActivity(c, user.ID, auth.ActivityRegister, "Account created")

	s.setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful",
		"token":   token,
		"user":    user,
	})
}

// LoginPayload is the credential login body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (s *Server) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		return badRequest("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	token, user, err := s.Auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	s.recordActivity(c, user.ID, auth.ActivityLogin, "Logged in")

	s.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (s *Server) Logout(c *fiber.Ctx) error {
	token := auth.ExtractToken(c, auth.DefaultExtractors(s.AuthCfg.GetCookieName())...)
	if token != "" {
		if claims, err := s.Auther.TokenService().Validate(token); err == nil {
			s.recordActivity(c, claims.UserID(), auth.ActivityLogout, "Logged out")
		}
	}

	s.clearAuthCookie(c)

	return c.JSON(fiber.Map{"success": true, "message": "Logged out successfully"})
}

func (s *Server) Me(c *fiber.Ctx) error {
	claims := auth.ClaimsFromFiber(c)
	if claims == nil {
		return auth.ErrMissingToken
	}

	user, err := s.Repo.Users().GetByID(c.Context(), claims.UserID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrUserNotFound
		}
		return err
	}

	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          user,
	})
}

func (s *Server) GetProfile(c *fiber.Ctx) error {
	claims := auth.ClaimsFromFiber(c)
	if claims == nil {
		return auth.ErrMissingToken
	}

	user, err := s.Repo.Users().GetByID(c.Context(), claims.UserID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrUserNotFound
		}
		return err
	}

	// Accounts created before profiles existed have no profile row.
	profile, err := s.Repo.Profiles().GetByUserID(c.Context(), user.ID)
	if err != nil && !goerrors.IsNotFound(err) {
		return err
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// UpdateProfilePayload carries the self-service profile patch. Every field is
// optional; absent fields are left untouched.
type UpdateProfilePayload struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Company     *string `json:"company"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	Password    *string `json:"password"`
}

// Validate will run validation rules
func (r UpdateProfilePayload) Validate() error {
	var errs validation.Errors = map[string]error{}

	if r.FullName != nil {
		if err := validation.Validate(*r.FullName, validation.Required, validation.Length(1, 200)); err != nil {
			errs["fullName"] = err
		}
	}

	if r.Email != nil {
		if err := validation.Validate(*r.Email, validation.Required, is.Email); err != nil {
			errs["email"] = err
		}
	}

	if r.Password != nil {
		if err := validation.Validate(*r.Password, validation.Required, validation.Length(8, 100)); err != nil {
			errs["password"] = err
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	claims := auth.ClaimsFromFiber(c)
	if claims == nil {
		return auth.ErrMissingToken
	}

	payload := new(UpdateProfilePayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	user, err := s.Repo.Users().GetByID(c.Context(), claims.UserID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrUserNotFound
		}
		return err
	}

	userColumns := []string{}
	passwordChanged := false

	if payload.FullName != nil {
		user.FullName = strings.TrimSpace(*payload.FullName)
		userColumns = append(userColumns, "full_name")
	}

	if payload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*payload.Email))
		if email != user.Email {
			if err := s.ensureEmailFree(c.Context(), email); err != nil {
				return err
			}
			user.Email = email
			userColumns = append(userColumns, "email")
		}
	}

	if payload.Password != nil {
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		user.ForcePasswordReset = false
		userColumns = append(userColumns, "password_hash", "force_password_reset")
		passwordChanged = true
	}

	profile, profileColumns, err := s.applyProfilePatch(c.Context(), user.ID, profilePatch{
		PhoneNumber: payload.PhoneNumber,
		Company:     payload.Company,
		Bio:         payload.Bio,
		AvatarURL:   payload.AvatarURL,
	})
	if err != nil {
		return err
	}

	err = s.Repo.RunInTx(c.Context(), nil, func(ctx context.Context, tx bun.Tx) error {
		if len(userColumns) > 0 {
			if err := s.Repo.Users().UpdateTx(ctx, tx, user, userColumns...); err != nil {
				return err
			}
		}

		if profile == nil {
			return nil
		}

		if profile.ID == "" {
			profile.ID = uuid.NewString()
			return s.Repo.Profiles().CreateTx(ctx, tx, profile)
		}

		return s.Repo.Profiles().UpdateTx(ctx, tx, profile, profileColumns...)
	})
	if err != nil {
		return err
	}

	if passwordChanged {
		s.recordActivity(c, user.ID, auth.ActivityPasswordChange, "Password changed")
	} else {
		s.recordActivity(c, user.ID, auth.ActivityProfileUpdate, "Profile updated")
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}

// VerifyTokenPayload carries the token on service verification calls.
type VerifyTokenPayload struct {
	Token string `json:"token"`
}

// VerifyToken lets downstream services exchange a token for the account it
// represents. A token is verified whenever one is presented; a request
// carrying only the shared service key gets a trust-only acknowledgement
// with no user lookup.
func (s *Server) VerifyToken(c *fiber.Ctx) error {
	payload := new(VerifyTokenPayload)
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(payload); err != nil {
			return badRequest("Invalid request body")
		}
	}

	if payload.Token == "" {
		payload.Token = c.Query("token")
	}

	if payload.Token == "" {
		if s.svcAuth.AuthorizeRequest(c) {
			return c.JSON(fiber.Map{"valid": true, "service": true})
		}
		return badRequest("Token is required")
	}

	claims, err := s.Auther.TokenService().Validate(payload.Token)
	if err != nil {
		return err
	}

	user, err := s.Repo.Users().GetByID(c.Context(), claims.UserID())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrUserNotFound
		}
		return err
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"user":  user,
	})
}

type profilePatch struct {
	PhoneNumber *string
	Company     *string
	Bio         *string
	AvatarURL   *string
}

func (p profilePatch) empty() bool {
	return p.PhoneNumber == nil && p.Company == nil && p.Bio == nil && p.AvatarURL == nil
}

// applyProfilePatch loads the profile row, applies the requested changes, and
// reports which columns to persist. The lookup happens outside the update
// transaction. Returns a nil profile when nothing was requested.
func (s *Server) applyProfilePatch(ctx context.Context, userID string, patch profilePatch) (*auth.Profile, []string, error) {
	if patch.empty() {
		return nil, nil, nil
	}

	profile, err := s.Repo.Profiles().GetByUserID(ctx, userID)
	if err != nil {
		if !goerrors.IsNotFound(err) {
			return nil, nil, err
		}
		profile = &auth.Profile{UserID: userID}
	}

	columns := []string{}
	if patch.PhoneNumber != nil {
		profile.PhoneNumber = auth.NormalizePhone(*patch.PhoneNumber)
		columns = append(columns, "phone_number")
	}
	if patch.Company != nil {
		profile.Company = strings.TrimSpace(*patch.Company)
		columns = append(columns, "company")
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
		columns = append(columns, "bio")
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = *patch.AvatarURL
		columns = append(columns, "avatar_url")
	}

	return profile, columns, nil
}

func (s *Server) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.Repo.Users().GetByEmail(ctx, email)
	if err == nil {
		return auth.ErrEmailTaken
	}
	if !goerrors.IsNotFound(err) {
		return err
	}
	return nil
}

// recordActivity writes an audit entry for the request. Best effort.
func (s *Server) recordActivity(c *fiber.Ctx, userID string, activityType auth.ActivityType, details string) {
	info := auth.GetClientInfo(c)

	sink := auth.ActivitySinkFunc(func(ctx context.Context, entry *auth.ActivityLog) error {
		return s.Repo.ActivityLogs().Record(ctx, entry)
	})

	auth.RecordActivity(context.Background(), sink, s.Logger, &auth.ActivityLog{
		UserID:    userID,
		Type:      activityType,
		Details:   details,
		IPAddress: info.IPAddress,
		UserAgent: info.UserAgent,
	})
}

func (s *Server) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.AuthCfg.GetCookieName(),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(s.AuthCfg.GetTokenExpiration()) * time.Hour),
		HTTPOnly: true,
		Secure:   s.AuthCfg.GetCookieSecure(),
		SameSite: "Lax",
	})
}

func (s *Server) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.AuthCfg.GetCookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.AuthCfg.GetCookieSecure(),
		SameSite: "Lax",
	})
}
