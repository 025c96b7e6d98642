package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/audit"
	"github.com/barberdesk/barbershop-api/internal/config"
	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/models"
	"github.com/barberdesk/barbershop-api/internal/validators"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userPayload struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// --------- Register ---------

func (h *AuthHandler) RegisterBarber(c *gin.Context) {
	h.register(c, middleware.RoleBarber)
}

func (h *AuthHandler) RegisterClient(c *gin.Context) {
	h.register(c, middleware.RoleClient)
}

func (h *AuthHandler) register(c *gin.Context, role string) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	if h.emailTaken(role, email) {
		httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	var payload userPayload

	if role == middleware.RoleBarber {
		barber := models.Barber{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
		}
		if err := h.db.Create(&barber).Error; err != nil {
			h.registerError(c, err)
			return
		}
		payload = userPayload{barber.ID, barber.Name, barber.Email, barber.Phone, role}
	} else {
		client := models.Client{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
		}
		if err := h.db.Create(&client).Error; err != nil {
			h.registerError(c, err)
			return
		}
		payload = userPayload{client.ID, client.Name, client.Email, client.Phone, role}
	}

	token, err := h.generateToken(payload.ID, payload.Email, role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:    role + "_registered",
		Entity:    role,
		EntityID:  &payload.ID,
		ActorID:   &payload.ID,
		ActorRole: role,
	})

	c.JSON(201, gin.H{"user": payload, "token": token})
}

// emailTaken is the portable duplicate check; the unique index (surfacing as
// a 23505 in registerError) still catches two registrations racing past it.
func (h *AuthHandler) emailTaken(role, email string) bool {
	var count int64
	if role == middleware.RoleBarber {
		h.db.Model(&models.Barber{}).Where("email = ?", email).Count(&count)
	} else {
		h.db.Model(&models.Client{}).Where("email = ?", email).Count(&count)
	}
	return count > 0
}

func (h *AuthHandler) registerError(c *gin.Context, err error) {
	if httperr.IsUniqueViolation(err) {
		httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
		return
	}
	httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
}

// --------- Login ---------

func (h *AuthHandler) LoginBarber(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var barber models.Barber
	err := h.db.Where("email = ?", email).First(&barber).Error
	h.finishLogin(c, err, barber.PasswordHash, req.Password, userPayload{
		ID:    barber.ID,
		Name:  barber.Name,
		Email: barber.Email,
		Phone: barber.Phone,
		Role:  middleware.RoleBarber,
	})
}

func (h *AuthHandler) LoginClient(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var client models.Client
	err := h.db.Where("email = ?", email).First(&client).Error
	h.finishLogin(c, err, client.PasswordHash, req.Password, userPayload{
		ID:    client.ID,
		Name:  client.Name,
		Email: client.Email,
		Phone: client.Phone,
		Role:  middleware.RoleClient,
	})
}

func (h *AuthHandler) finishLogin(
	c *gin.Context,
	lookupErr error,
	hash string,
	password string,
	payload userPayload,
) {
	if lookupErr != nil {
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}

	token, err := h.generateToken(payload.ID, payload.Email, payload.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:    payload.Role + "_login",
		Entity:    payload.Role,
		EntityID:  &payload.ID,
		ActorID:   &payload.ID,
		ActorRole: payload.Role,
	})

	c.JSON(200, gin.H{"user": payload, "token": token})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(id uint, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
