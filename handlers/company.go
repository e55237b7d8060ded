package handlers

import (
	"errors"
	"net/http"

	"agendamento/models"
	"agendamento/services/company"
	"agendamento/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	Service company.CompanyService
}

func NewCompanyHandler(svc company.CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: svc}
}

// RegisterCompanyHandler handles POST /empresas. The caller becomes the owner.
func (h *CompanyHandler) RegisterCompanyHandler(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	created, err := h.Service.RegisterCompany(c.Request.Context(), ownerID, req)
	if err != nil {
		companyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Empresa cadastrada com sucesso!", "id": created.ID})
}

// AddServiceHandler handles POST /empresas/:id/servicos.
func (h *CompanyHandler) AddServiceHandler(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	created, err := h.Service.AddService(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		companyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Serviço cadastrado com sucesso!", "id": created.ID})
}

// ListServicesHandler handles GET /empresas/:id/servicos.
func (h *CompanyHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Service.ListServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		companyError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func companyError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, company.ErrMissingCompanyID):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, company.ErrCompanyNotFound):
		utils.JSONError(c, http.StatusNotFound, "Company not found")
	case errors.Is(err, company.ErrNotCompanyOwner):
		utils.JSONError(c, http.StatusForbidden, err.Error())
	default:
		getLogger(c).Error("Company operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Erro interno do servidor.")
	}
}
