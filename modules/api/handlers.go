package api

import (
	"errors"
	"log"

	"github.com/example/taskflow/domain/task"
	domain "github.com/example/taskflow/domain/user"
	"github.com/example/taskflow/modules/auth"
	"github.com/example/taskflow/modules/tasks"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth  *auth.AuthService
	tasks *tasks.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authService *auth.AuthService, taskService *tasks.Service) *Handlers {
	return &Handlers{
		auth:  authService,
		tasks: taskService,
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"module": "api",
	})
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	user, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	tokens, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokenResponse(tokens))
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	tokens, err := h.auth.RefreshTokens(c.UserContext(), req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(tokenResponse(tokens))
}

// SignOut revokes the caller's access token.
func (h *Handlers) SignOut(c *fiber.Ctx) error {
	token, ok := c.Locals(TokenContextKey).(string)
	if !ok || token == "" {
		return unauthorized(c, "User not authenticated")
	}

	if err := h.auth.SignOut(c.UserContext(), token); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetProfile returns the caller's profile.
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	profile, err := h.auth.GetProfile(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:       profile.ID,
		Email:    claims.Email,
		FullName: profile.FullName,
	})
}

// UpdateProfile sets or clears the caller's full name.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.auth.UpdateProfile(c.UserContext(), claims.UserID, req.FullName)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:       profile.ID,
		Email:    claims.Email,
		FullName: profile.FullName,
	})
}

// ListTasks returns the caller's filtered task view.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	query := c.Query("q")
	status := c.Query("status", task.FilterAll)
	priority := c.Query("priority", task.FilterAll)

	view, err := h.tasks.View(c.UserContext(), claims.UserID, query, status, priority)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// CreateTask creates a new task for the caller.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result := h.tasks.Create(c.UserContext(), claims.UserID, taskRaw(req))
	return h.respondResult(c, result, fiber.StatusCreated)
}

// UpdateTask overwrites an existing task owned by the caller.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result := h.tasks.Update(c.UserContext(), claims.UserID, c.Params("id"), taskRaw(req))
	return h.respondResult(c, result, fiber.StatusOK)
}

// DeleteTask removes a task owned by the caller.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	result := h.tasks.Delete(c.UserContext(), claims.UserID, c.Params("id"))
	if result.State == tasks.StateSucceeded {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return h.respondResult(c, result, fiber.StatusNoContent)
}

// DashboardStats returns the caller's per-status task counters.
func (h *Handlers) DashboardStats(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	stats, err := h.tasks.Stats(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

// respondResult maps a mutation result to an HTTP response.
func (h *Handlers) respondResult(c *fiber.Ctx, result tasks.Result, successCode int) error {
	switch result.State {
	case tasks.StateValidationFailed:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
			Error:      "validation_failed",
			Violations: result.Violations,
		})
	case tasks.StateFailed:
		return h.handleTaskError(c, result.Err)
	default:
		return c.Status(successCode).JSON(result.Task)
	}
}

// handleTaskError maps store and cache errors to HTTP responses.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, task.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case errors.Is(err, task.ErrUnauthorized):
		return unauthorized(c, "Not allowed to access this task")
	case errors.Is(err, task.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "store_unavailable",
			Message: "Task store is unavailable",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// handleAuthError maps auth and profile errors to HTTP responses.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return unauthorized(c, "Invalid email or password")
	case errors.Is(err, auth.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case errors.Is(err, auth.ErrInvalidEmail):
		return badRequest(c, "Invalid email format")
	case errors.Is(err, auth.ErrWeakPassword):
		return badRequest(c, "Password must be at least 8 characters")
	case errors.Is(err, auth.ErrPasswordTooLong):
		return badRequest(c, "Password must be at most 72 characters")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenRevoked):
		return unauthorized(c, "Invalid or expired token")
	case errors.Is(err, domain.ErrInvalidName):
		return badRequest(c, "Full name must be between 2 and 100 characters")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "User not found",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func taskRaw(req TaskRequest) task.Raw {
	status := req.Status
	if status == "" {
		status = string(task.StatusPending)
	}
	priority := req.Priority
	if priority == "" {
		priority = string(task.PriorityMedium)
	}
	return task.Raw{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
	}
}

func tokenResponse(tokens *domain.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
