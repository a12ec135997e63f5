package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oduyemi/preschool-api/internal/service"
	appErrors "github.com/oduyemi/preschool-api/pkg/errors"
	"github.com/oduyemi/preschool-api/pkg/response"
)

// LookupHandler exposes the reference entity endpoints.
type LookupHandler struct {
	lookups *service.LookupService
}

// NewLookupHandler constructs LookupHandler.
func NewLookupHandler(lookups *service.LookupService) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

// ListDepartments godoc
// @Summary List departments
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *LookupHandler) ListDepartments(c *gin.Context) {
	departments, err := h.lookups.ListDepartments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departments, nil)
}

// CreateDepartment godoc
// @Summary Create department
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body service.CreateNamedRequest true "Department payload"
// @Success 201 {object} response.Envelope
// @Router /departments [post]
func (h *LookupHandler) CreateDepartment(c *gin.Context) {
	var req service.CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	department, err := h.lookups.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, department)
}

// DeleteDepartment godoc
// @Summary Delete department
// @Tags Lookups
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [delete]
func (h *LookupHandler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid department id"))
		return
	}
	department, err := h.lookups.DeleteDepartment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, department, nil)
}

// ListRoles godoc
// @Summary List roles
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *LookupHandler) ListRoles(c *gin.Context) {
	roles, err := h.lookups.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roles, nil)
}

// CreateRole godoc
// @Summary Create role
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body service.CreateNamedRequest true "Role payload"
// @Success 201 {object} response.Envelope
// @Router /roles [post]
func (h *LookupHandler) CreateRole(c *gin.Context) {
	var req service.CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	role, err := h.lookups.CreateRole(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, role)
}

// DeleteRole godoc
// @Summary Delete role
// @Tags Lookups
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} response.Envelope
// @Router /roles/{id} [delete]
func (h *LookupHandler) DeleteRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid role id"))
		return
	}
	role, err := h.lookups.DeleteRole(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, role, nil)
}

// ListGenders godoc
// @Summary List genders
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /genders [get]
func (h *LookupHandler) ListGenders(c *gin.Context) {
	genders, err := h.lookups.ListGenders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, genders, nil)
}

// CreateGender godoc
// @Summary Create gender
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body service.CreateNamedRequest true "Gender payload"
// @Success 201 {object} response.Envelope
// @Router /genders [post]
func (h *LookupHandler) CreateGender(c *gin.Context) {
	var req service.CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	gender, err := h.lookups.CreateGender(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gender)
}

// DeleteGender godoc
// @Summary Delete gender
// @Tags Lookups
// @Produce json
// @Param id path int true "Gender ID"
// @Success 200 {object} response.Envelope
// @Router /genders/{id} [delete]
func (h *LookupHandler) DeleteGender(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid gender id"))
		return
	}
	gender, err := h.lookups.DeleteGender(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gender, nil)
}

// ListEmergencyContacts godoc
// @Summary List emergency contacts
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /emergency-contacts [get]
func (h *LookupHandler) ListEmergencyContacts(c *gin.Context) {
	contacts, err := h.lookups.ListEmergencyContacts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contacts, nil)
}

// CreateEmergencyContact godoc
// @Summary Create emergency contact
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body service.CreateEmergencyRequest true "Emergency contact payload"
// @Success 201 {object} response.Envelope
// @Router /emergency-contacts [post]
func (h *LookupHandler) CreateEmergencyContact(c *gin.Context) {
	var req service.CreateEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	contact, err := h.lookups.CreateEmergencyContact(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, contact)
}

// DeleteEmergencyContact godoc
// @Summary Delete emergency contact
// @Tags Lookups
// @Produce json
// @Param id path int true "Emergency contact ID"
// @Success 200 {object} response.Envelope
// @Router /emergency-contacts/{id} [delete]
func (h *LookupHandler) DeleteEmergencyContact(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid emergency contact id"))
		return
	}
	contact, err := h.lookups.DeleteEmergencyContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contact, nil)
}

// ListMedicalCategories godoc
// @Summary List medical categories
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /medical-categories [get]
func (h *LookupHandler) ListMedicalCategories(c *gin.Context) {
	categories, err := h.lookups.ListMedicalCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// CreateMedicalCategory godoc
// @Summary Create medical category
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body service.CreateNamedRequest true "Medical category payload"
// @Success 201 {object} response.Envelope
// @Router /medical-categories [post]
func (h *LookupHandler) CreateMedicalCategory(c *gin.Context) {
	var req service.CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	category, err := h.lookups.CreateMedicalCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// DeleteMedicalCategory godoc
// @Summary Delete medical category
// @Tags Lookups
// @Produce json
// @Param id path int true "Medical category ID"
// @Success 200 {object} response.Envelope
// @Router /medical-categories/{id} [delete]
func (h *LookupHandler) DeleteMedicalCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid medical category id"))
		return
	}
	category, err := h.lookups.DeleteMedicalCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// ListMedicalConditions godoc
// @Summary List medical conditions
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /medical-conditions [get]
func (h *LookupHandler) ListMedicalConditions(c *gin.Context) {
	conditions, err := h.lookups.ListMedicalConditions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conditions, nil)
}

// CreateMedicalCondition godoc
// @Summary Create medical condition
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body service.CreateMedicalConditionRequest true "Medical condition payload"
// @Success 201 {object} response.Envelope
// @Router /medical-conditions [post]
func (h *LookupHandler) CreateMedicalCondition(c *gin.Context) {
	var req service.CreateMedicalConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	condition, err := h.lookups.CreateMedicalCondition(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, condition)
}

// DeleteMedicalCondition godoc
// @Summary Delete medical condition
// @Tags Lookups
// @Produce json
// @Param id path int true "Medical condition ID"
// @Success 200 {object} response.Envelope
// @Router /medical-conditions/{id} [delete]
func (h *LookupHandler) DeleteMedicalCondition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid medical condition id"))
		return
	}
	condition, err := h.lookups.DeleteMedicalCondition(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, condition, nil)
}
