package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackwise/catalog-api/internal/apierr"
	"github.com/stackwise/catalog-api/internal/query"
	"github.com/stackwise/catalog-api/internal/services"
	"github.com/stackwise/catalog-api/internal/types"
)

type ServiceHandler struct {
	serviceService services.ServiceService
}

func NewServiceHandler(serviceService services.ServiceService) *ServiceHandler {
	return &ServiceHandler{serviceService: serviceService}
}

func (sh *ServiceHandler) List(c *gin.Context) {
	var sortParam interface{}
	if raw, ok := c.GetQueryArray("sort"); ok {
		sortParam = raw
	}
	sort, err := query.ParseSort(sortParam, types.ServiceSortKeys)
	if err != nil {
		RespondError(c, err)
		return
	}
	page, err := query.ParsePagination(c.Query("offset"), c.Query("limit"))
	if err != nil {
		RespondError(c, err)
		return
	}

	result, err := sh.serviceService.FindAll(c.Request.Context(), c.Query("search"), sort, page)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (sh *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	service, err := sh.serviceService.FindOne(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sh *ServiceHandler) Create(c *gin.Context) {
	var in types.CreateResourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body: %v", err))
		return
	}
	if err := in.Validate(); err != nil {
		RespondError(c, err)
		return
	}
	service, err := sh.serviceService.Create(c.Request.Context(), &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sh *ServiceHandler) Upsert(c *gin.Context) {
	id, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	var in types.CreateResourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body: %v", err))
		return
	}
	if err := in.Validate(); err != nil {
		RespondError(c, err)
		return
	}
	service, err := sh.serviceService.CreateOrReplace(c.Request.Context(), id, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sh *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	var in types.UpdateResourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body: %v", err))
		return
	}
	if err := in.Validate(); err != nil {
		RespondError(c, err)
		return
	}
	service, err := sh.serviceService.Update(c.Request.Context(), id, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (sh *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	if err := sh.serviceService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
