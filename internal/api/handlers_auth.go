package api

import (
	"strings"

	"github.com/blossomhealth/blossom/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type registerInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return apiError(c, fiber.StatusBadRequest, "All fields are required")
	}
	if input.Password != input.ConfirmPassword {
		return apiError(c, fiber.StatusBadRequest, "Passwords do not match")
	}

	usernameTaken, err := handler.authService.UsernameExists(input.Username)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Error creating user")
	}
	if usernameTaken {
		return apiError(c, fiber.StatusBadRequest, "Username already taken")
	}

	emailTaken, err := handler.authService.RegistrationEmailExists(strings.ToLower(input.Email))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Error creating user")
	}
	if emailTaken {
		return apiError(c, fiber.StatusBadRequest, "Email already taken")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Error creating user")
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    handler.now(),
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Error creating user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return apiError(c, fiber.StatusBadRequest, "Both username and password are required")
	}

	user, err := handler.authService.FindByUsername(input.Username)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := handler.buildAuthToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "An error occurred")
	}
	if err := handler.authService.RecordLogin(user.ID, handler.now()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "An error occurred")
	}

	return c.JSON(fiber.Map{
		"access": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"message": "Login successful",
	})
}

// Logout exists for client symmetry; tokens are stateless and simply
// expire.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.repositories.Users.DeleteAccountAndRelatedData(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "An error occurred")
	}
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}
