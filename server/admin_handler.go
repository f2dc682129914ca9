package server

import (
	"context"
	"strings"
	"time"

	auth "github.com/Exploree-Solutions/exploree-auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AdminListUsers returns a filtered, paged user listing with headline counts.
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	criteria := auth.UserListCriteria{
		Search:    c.Query("search"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 10),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	}

	if raw := c.Query("role"); raw != "" {
		role, ok := auth.ParseRole(raw)
		if !ok {
			return badRequest("Invalid role filter")
		}
		criteria.Role = role
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := auth.ParseStatus(raw)
		if !ok {
			return badRequest("Invalid status filter")
		}
		criteria.Status = status
	}

	users, total, err := s.Repo.Users().List(c.Context(), criteria)
	if err != nil {
		return err
	}

	stats, err := s.userCounts(c.Context())
	if err != nil {
		return err
	}

	totalPages := 0
	if criteria.Limit > 0 {
		totalPages = (total + criteria.Limit - 1) / criteria.Limit
	}

	return c.JSON(fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"page":       criteria.Page,
			"limit":      criteria.Limit,
			"total":      total,
			"totalPages": totalPages,
		},
		"stats": stats,
	})
}

func (s *Server) userCounts(ctx context.Context) (fiber.Map, error) {
	users := s.Repo.Users()

	total, err := users.Count(ctx)
	if err != nil {
		return nil, err
	}

	active, err := users.CountByStatus(ctx, auth.UserStatusActive)
	if err != nil {
		return nil, err
	}

	inactive, err := users.CountByStatus(ctx, auth.UserStatusInactive)
	if err != nil {
		return nil, err
	}

	suspended, err := users.CountByStatus(ctx, auth.UserStatusSuspended)
	if err != nil {
		return nil, err
	}

	admins, err := users.CountByRole(ctx, auth.RoleSystemAdmin)
	if err != nil {
		return nil, err
	}

	newToday, err := users.CountCreatedSince(ctx, startOfDay(time.Now()))
	if err != nil {
		return nil, err
	}

	return fiber.Map{
		"total":     total,
		"active":    active,
		"inactive":  inactive,
		"suspended": suspended,
		"admins":    admins,
		"newToday":  newToday,
	}, nil
}

// AdminCreateUserPayload is the admin user-creation body. Unlike self-service
// registration it can set role and status directly.
type AdminCreateUserPayload struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	PhoneNumber string `json:"phoneNumber"`
	Company     string `json:"company"`
}

// Validate will run validation rules
func (r AdminCreateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Role, validation.In("USER", "SYSTEM_ADMIN")),
		validation.Field(&r.Status, validation.In("ACTIVE", "INACTIVE", "SUSPENDED")),
	)
}

func (s *Server) AdminCreateUser(c *fiber.Ctx) error {
	payload := new(AdminCreateUserPayload)

	if err := c.BodyParser(payload); err != nil {
		return badRequest("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	role, _ := auth.ParseRole(payload.Role)
	status, _ := auth.ParseStatus(payload.Status)

	handler := auth.NewRegisterUserHandler(s.Repo)
	user, err := handler.Execute(c.Context(), auth.RegisterUserMessage{
		FullName:    payload.FullName,
		Email:       payload.Email,
		Password:    payload.Password,
		PhoneNumber: payload.PhoneNumber,
		Company:     payload.Company,
		Role:        role,
		Status:      status,
	})
	if err != nil {
		return err
	}

	s.recordAdminAction(c, "Created user "+user.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created",
		"user":    user,
	})
}

func (s *Server) AdminGetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	user, err := s.Repo.Users().GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrUserNotFound
		}
		return err
	}

	profile, err := s.Repo.Profiles().GetByUserID(c.Context(), user.ID)
	if err != nil && !goerrors.IsNotFound(err) {
		return err
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// AdminUpdateUserPayload is the admin user patch. Every field is optional.
type AdminUpdateUserPayload struct {
	FullName           *string `json:"fullName"`
	Email              *string `json:"email"`
	Role               *string `json:"role"`
	Status             *string `json:"status"`
	ForcePasswordReset *bool   `json:"forcePasswordReset"`
	Password           *string `json:"password"`
	PhoneNumber        *string `json:"phoneNumber"`
	Company            *string `json:"company"`
}

func (s *Server) AdminUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	payload := new(AdminUpdateUserPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest("Invalid request body")
	}

	user, err := s.Repo.Users().GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrUserNotFound
		}
		return err
	}

	columns := []string{}

	if payload.FullName != nil {
		user.FullName = strings.TrimSpace(*payload.FullName)
		columns = append(columns, "full_name")
	}

	if payload.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*payload.Email))
		if email != user.Email {
			if err := s.ensureEmailFree(c.Context(), email); err != nil {
				return err
			}
			user.Email = email
			columns = append(columns, "email")
		}
	}

	if payload.Role != nil {
		role, ok := auth.ParseRole(*payload.Role)
		if !ok {
			return badRequest("Invalid role")
		}
		user.Role = role
		columns = append(columns, "role")
	}

	if payload.Status != nil {
		status, ok := auth.ParseStatus(*payload.Status)
		if !ok {
			return badRequest("Invalid status")
		}
		user.Status = status
		columns = append(columns, "status")
	}

	if payload.ForcePasswordReset != nil {
		user.ForcePasswordReset = *payload.ForcePasswordReset
		columns = append(columns, "force_password_reset")
	}

	if payload.Password != nil {
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		columns = append(columns, "password_hash")
	}

	profile, profileColumns, err := s.applyProfilePatch(c.Context(), user.ID, profilePatch{
		PhoneNumber: payload.PhoneNumber,
		Company:     payload.Company,
	})
	if err != nil {
		return err
	}

	err = s.Repo.RunInTx(c.Context(), nil, func(ctx context.Context, tx bun.Tx) error {
		if len(columns) > 0 {
			if err := s.Repo.Users().UpdateTx(ctx, tx, user, columns...); err != nil {
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

	s.recordAdminAction(c, "Updated user "+user.Email)

	return c.JSON(fiber.Map{
		"message": "User updated",
		"user":    user,
	})
}

func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	claims := auth.ClaimsFromFiber(c)
	if claims != nil && claims.UserID() == id {
		return auth.ErrSelfDeletion
	}

	user, err := s.Repo.Users().GetByID(c.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.ErrUserNotFound
		}
		return err
	}

	if err := s.Repo.Users().Delete(c.Context(), id); err != nil {
		return err
	}

	s.recordAdminAction(c, "Deleted user "+user.Email)

	return c.JSON(fiber.Map{"message": "User deleted"})
}

// AdminStats returns the dashboard snapshot: user counts, signup growth,
// login activity, and accounts flagged for a password reset.
func (s *Server) AdminStats(c *fiber.Ctx) error {
	ctx := c.Context()
	users := s.Repo.Users()
	logs := s.Repo.ActivityLogs()

	counts, err := s.userCounts(ctx)
	if err != nil {
		return err
	}

	total := counts["total"].(int)
	admins := counts["admins"].(int)

	now := time.Now()
	today := startOfDay(now)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	newThisWeek, err := users.CountCreatedSince(ctx, weekAgo)
	if err != nil {
		return err
	}

	newThisMonth, err := users.CountCreatedSince(ctx, monthAgo)
	if err != nil {
		return err
	}

	loginsToday, err := logs.CountSince(ctx, auth.ActivityLogin, today)
	if err != nil {
		return err
	}

	loginsThisWeek, err := logs.CountSince(ctx, auth.ActivityLogin, weekAgo)
	if err != nil {
		return err
	}

	recent, err := logs.Recent(ctx, 10)
	if err != nil {
		return err
	}

	needingReset, err := users.CountForcePasswordReset(ctx)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"users": fiber.Map{
			"total":        total,
			"active":       counts["active"],
			"inactive":     counts["inactive"],
			"suspended":    counts["suspended"],
			"admins":       admins,
			"regularUsers": total - admins,
		},
		"growth": fiber.Map{
			"today":     counts["newToday"],
			"thisWeek":  newThisWeek,
			"thisMonth": newThisMonth,
		},
		"activity": fiber.Map{
			"loginsToday":      loginsToday,
			"loginsThisWeek":   loginsThisWeek,
			"recentActivities": recent,
		},
		"alerts": fiber.Map{
			"usersNeedingPasswordReset": needingReset,
		},
	})
}

func (s *Server) AdminActivityLogs(c *fiber.Ctx) error {
	criteria := auth.ActivityListCriteria{
		UserID: c.Query("userId"),
		Type:   auth.ActivityType(c.Query("type")),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}

	entries, total, err := s.Repo.ActivityLogs().List(c.Context(), criteria)
	if err != nil {
		return err
	}

	totalPages := 0
	if criteria.Limit > 0 {
		totalPages = (total + criteria.Limit - 1) / criteria.Limit
	}

	return c.JSON(fiber.Map{
		"logs": entries,
		"pagination": fiber.Map{
			"page":       criteria.Page,
			"limit":      criteria.Limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

func (s *Server) recordAdminAction(c *fiber.Ctx, details string) {
	claims := auth.ClaimsFromFiber(c)
	if claims == nil {
		return
	}
	s.recordActivity(c, claims.UserID(), auth.ActivityAdminAction, details)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
