package server

import (
	"strings"

	auth "github.com/Exploree-Solutions/exploree-auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// JoinWaitlistPayload is the waitlist signup body. Name and userId are
// optional context for the outreach list.
type JoinWaitlistPayload struct {
	Email   string `json:"email"`
	Service string `json:"service"`
	Name    string `json:"name"`
	UserID  string `json:"userId"`
}

// Validate will run validation rules
func (r JoinWaitlistPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Service, validation.Required,
			validation.In("jobs", "tender", "events", "opportunities")),
	)
}

// JoinWaitlist adds an email to a service waitlist. Joining twice is not an
// error; the second call reports the existing signup.
func (s *Server) JoinWaitlist(c *fiber.Ctx) error {
	payload := new(JoinWaitlistPayload)

	if err := c.BodyParser(payload); err != nil {
		return badRequest("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	if _, err := s.Repo.Waitlist().GetByEmailAndService(c.Context(), email, payload.Service); err == nil {
		return c.JSON(fiber.Map{
			"message":       "Already on waitlist",
			"alreadyExists": true,
		})
	} else if !goerrors.IsNotFound(err) {
		return err
	}

	entry := &auth.WaitlistEntry{
		Email:   email,
		Service: payload.Service,
		Name:    strings.TrimSpace(payload.Name),
		UserID:  payload.UserID,
	}

	if err := s.Repo.Waitlist().Create(c.Context(), entry); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Added to waitlist",
	})
}

// WaitlistCount reports how many signups a service has collected.
func (s *Server) WaitlistCount(c *fiber.Ctx) error {
	service := c.Query("service")
	if !auth.ValidService(service) {
		return badRequest("Invalid service")
	}

	count, err := s.Repo.Waitlist().CountByService(c.Context(), service)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"service": service,
		"count":   count,
	})
}
