package controllers

import (
	"examprep/backend/config"
	"examprep/backend/middleware"
	"examprep/backend/models"
	"examprep/backend/repositories"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Users *repositories.UserRepository
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Users: repositories.NewUserRepository(db)}
}

// Compared against on the unknown-email path so a login failure takes the
// same time whether or not the account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a new user account and issues an access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), ac.Cfg.BcryptCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		UserID:       uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Name:         input.Name,
	}
	if err := ac.Users.Create(&user); err != nil {
		if err == repositories.ErrEmailTaken {
			return utils.BadRequest(c, "Email already registered")
		}
		return utils.InternalServerError(c, "Could not create user")
	}

	token, err := utils.GenerateAccessToken(user.Email, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"user_info": fiber.Map{
			"user_id":    user.UserID,
			"email":      user.Email,
			"name":       user.Name,
			"created_at": user.CreatedAt,
		},
		"token": fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
		},
	})
}

// [+] Login godoc
// @Summary User login
// @Description Authenticates by email and password, returns a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	// The form field is called username but carries the email.
	var input struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse request body")
	}

	user, err := ac.Users.FindByEmail(input.Username)
	if err != nil {
		// Run the hash comparison anyway; unknown email and wrong
		// password must be indistinguishable.
		bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(input.Password))
		return utils.Unauthorized(c, "Incorrect email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Incorrect email or password")
	}

	token, err := utils.GenerateAccessToken(user.Email, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user's public fields.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	return c.JSON(fiber.Map{
		"user_id":    user.UserID,
		"email":      user.Email,
		"name":       user.Name,
		"created_at": user.CreatedAt,
	})
}
