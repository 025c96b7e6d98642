package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/httpresp"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/models"
	"github.com/barberdesk/barbershop-api/internal/storage"
	"github.com/barberdesk/barbershop-api/internal/timezone"
)

type BarberProfileHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	log      *zap.Logger
}

func NewBarberProfileHandler(db *gorm.DB, uploader *storage.Uploader, log *zap.Logger) *BarberProfileHandler {
	return &BarberProfileHandler{db: db, uploader: uploader, log: log}
}

type UpsertProfileRequest struct {
	Bio             string   `json:"bio"`
	Specialties     string   `json:"specialties"`
	ExperienceYears int      `json:"experience_years"`
	Rating          *float64 `json:"rating"`
	Timezone        string   `json:"timezone"`
	WorkingHours    string   `json:"working_hours"`
}

type RatingRequest struct {
	Rating float64 `json:"rating"`
}

// Upsert creates or updates the caller's own profile.
func (h *BarberProfileHandler) Upsert(c *gin.Context) {
	barberID, ok := pathID(c, "barberId")
	if !ok {
		return
	}
	if c.MustGet(middleware.ContextUserID).(uint) != barberID {
		httperr.Forbidden(c, "not_own_profile", "Você só pode editar o próprio perfil.")
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.WorkingHours != "" {
		if err := domain.ValidateWorkingHours(req.WorkingHours); err != nil {
			httperr.BadRequest(c, "invalid_working_hours", err.Error())
			return
		}
	}
	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Timezone inválido. Use um nome IANA.")
		return
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		httperr.BadRequest(c, "invalid_rating", "Rating deve estar entre 0 e 5.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	var profile models.BarberProfile
	err := h.db.Where("barber_id = ?", barberID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	profile.BarberID = barberID
	profile.Bio = req.Bio
	profile.Specialties = req.Specialties
	profile.ExperienceYears = req.ExperienceYears
	profile.Timezone = req.Timezone
	profile.WorkingHours = req.WorkingHours
	if req.Rating != nil {
		profile.Rating = *req.Rating
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_save_profile", "Erro ao salvar perfil.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *BarberProfileHandler) GetByBarber(c *gin.Context) {
	barberID, ok := pathID(c, "barberId")
	if !ok {
		return
	}

	var profile models.BarberProfile
	if err := h.db.Where("barber_id = ?", barberID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}
	httpresp.OK(c, profile)
}

func (h *BarberProfileHandler) List(c *gin.Context) {
	var profiles []models.BarberProfile
	if err := h.db.Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_profiles", "Erro ao listar perfis.")
		return
	}
	httpresp.List(c, profiles)
}

func (h *BarberProfileHandler) Search(c *gin.Context) {
	specialty := c.Query("specialty")
	if specialty == "" {
		httperr.BadRequest(c, "missing_specialty", "Parâmetro specialty é obrigatório.")
		return
	}

	var profiles []models.BarberProfile
	if err := h.db.
		Where("specialties LIKE ?", "%"+specialty+"%").
		Find(&profiles).Error; err != nil {
		httperr.Internal(c, "failed_to_search_profiles", "Erro ao buscar perfis.")
		return
	}
	httpresp.List(c, profiles)
}

// UpdateRating is client-only (policy middleware).
func (h *BarberProfileHandler) UpdateRating(c *gin.Context) {
	barberID, ok := pathID(c, "barberId")
	if !ok {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		httperr.BadRequest(c, "invalid_rating", "Rating deve estar entre 0 e 5.")
		return
	}

	var profile models.BarberProfile
	if err := h.db.Where("barber_id = ?", barberID).First(&profile).Error; err != nil {
		httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
		return
	}

	profile.Rating = req.Rating
	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_save_profile", "Erro ao salvar perfil.")
		return
	}

	httpresp.OK(c, profile)
}

func (h *BarberProfileHandler) Delete(c *gin.Context) {
	barberID, ok := pathID(c, "barberId")
	if !ok {
		return
	}
	if c.MustGet(middleware.ContextUserID).(uint) != barberID {
		httperr.Forbidden(c, "not_own_profile", "Você só pode excluir o próprio perfil.")
		return
	}

	res := h.db.Where("barber_id = ?", barberID).Delete(&models.BarberProfile{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_profile", "Erro ao excluir perfil.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "profile_not_found", "Perfil não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"status": "deleted"})
}

// UploadPicture re-encodes the submitted image as WebP and stores it in the
// configured bucket.
func (h *BarberProfileHandler) UploadPicture(c *gin.Context) {
	barberID, ok := pathID(c, "barberId")
	if !ok {
		return
	}
	if c.MustGet(middleware.ContextUserID).(uint) != barberID {
		httperr.Forbidden(c, "not_own_profile", "Você só pode editar o próprio perfil.")
		return
	}

	if !h.uploader.Enabled() {
		httperr.Write(c, 503, "storage_unavailable", "Armazenamento de imagens não configurado.")
		return
	}

	file, err := c.FormFile("picture")
	if err != nil {
		httperr.BadRequest(c, "missing_picture", "Envie o arquivo no campo picture.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Erro ao ler arquivo.")
		return
	}
	defer src.Close()

	url, err := h.uploader.UploadProfilePicture(c.Request.Context(), src)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var profile models.BarberProfile
	err = h.db.Where("barber_id = ?", barberID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	profile.BarberID = barberID
	profile.ProfilePicture = url
	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_save_profile", "Erro ao salvar perfil.")
		return
	}

	httpresp.OK(c, gin.H{"profile_picture": url})
}
