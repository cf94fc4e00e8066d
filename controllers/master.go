// controllers/master.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barbershop-backend/logger"
	"barbershop-backend/models"
	"barbershop-backend/services"
	"barbershop-backend/utils"
)

type MasterController struct {
	db      *gorm.DB
	masters *services.MasterService
}

func NewMasterController(db *gorm.DB, masters *services.MasterService) *MasterController {
	return &MasterController{db: db, masters: masters}
}

type CreateMasterInput struct {
	Name       string `json:"name" binding:"required"`
	Photo      string `json:"photo"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address"`
	Experience int    `json:"experience" binding:"min=0"`
	ServiceIDs []uint `json:"service_ids"`
}

type UpdateMasterInput struct {
	Name       *string `json:"name"`
	Photo      *string `json:"photo"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Experience *int    `json:"experience"`
	IsActive   *bool   `json:"is_active"`
	ServiceIDs []uint  `json:"service_ids"`
}

// GetMasters lists the active masters for the public site
func (ctl *MasterController) GetMasters(c *gin.Context) {
	masters, err := ctl.masters.ListActive()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, masters)
}

// GetMaster returns a master profile with services and published reviews,
// counting the view in place
func (ctl *MasterController) GetMaster(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	master, err := ctl.masters.GetWithDetails(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := ctl.masters.IncrementViewCount(id); err != nil {
		// Profile still renders; the counter is not worth a 500.
		logger.Warn("view count increment failed", "master_id", id, "error", err)
	} else {
		master.ViewCount++
	}

	c.JSON(http.StatusOK, master)
}

// GetMasterServices returns the services a master offers (order form AJAX)
func (ctl *MasterController) GetMasterServices(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	list, err := ctl.masters.ServicesOf(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	response := make([]gin.H, 0, len(list))
	for _, svc := range list {
		response = append(response, gin.H{
			"id":    svc.ID,
			"name":  svc.Name,
			"price": svc.Price,
		})
	}
	c.JSON(http.StatusOK, response)
}

// CreateMaster adds a master (staff only)
func (ctl *MasterController) CreateMaster(c *gin.Context) {
	var input CreateMasterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	master := models.Master{
		Name:       input.Name,
		Photo:      input.Photo,
		Phone:      input.Phone,
		Address:    input.Address,
		Experience: input.Experience,
		IsActive:   true,
	}

	if err := ctl.masters.Create(&master, input.ServiceIDs); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, master)
}

// UpdateMaster updates a master profile (staff only)
func (ctl *MasterController) UpdateMaster(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateMasterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var master models.Master
	if err := ctl.db.First(&master, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Master not found")
		return
	}

	if input.Name != nil {
		master.Name = *input.Name
	}
	if input.Photo != nil {
		master.Photo = *input.Photo
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		master.Phone = *input.Phone
	}
	if input.Address != nil {
		master.Address = *input.Address
	}
	if input.Experience != nil {
		if *input.Experience < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Experience must not be negative")
			return
		}
		master.Experience = *input.Experience
	}
	if input.IsActive != nil {
		master.IsActive = *input.IsActive
	}

	if err := ctl.db.Save(&master).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update master")
		return
	}

	if input.ServiceIDs != nil {
		if err := ctl.masters.ReplaceServices(&master, input.ServiceIDs); err != nil {
			utils.RespondAppError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, master)
}

// DeleteMaster removes a master; their reviews go with them, their orders
// stay behind without a master reference
func (ctl *MasterController) DeleteMaster(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctl.masters.Delete(id); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Master deleted successfully"})
}
