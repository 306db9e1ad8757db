package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackwise/catalog-api/internal/apierr"
	"github.com/stackwise/catalog-api/internal/query"
	"github.com/stackwise/catalog-api/internal/services"
	"github.com/stackwise/catalog-api/internal/types"
)

type VersionHandler struct {
	versionService services.VersionService
}

func NewVersionHandler(versionService services.VersionService) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

func (vh *VersionHandler) List(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	page, err := query.ParsePagination(c.Query("offset"), c.Query("limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	result, err := vh.versionService.FindAll(c.Request.Context(), serviceID, page)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (vh *VersionHandler) Get(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	version, err := vh.versionService.FindOne(c.Request.Context(), serviceID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

func (vh *VersionHandler) Create(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "serviceId")
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
	version, err := vh.versionService.Create(c.Request.Context(), serviceID, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, version)
}

func (vh *VersionHandler) Upsert(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
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
	version, err := vh.versionService.CreateOrReplace(c.Request.Context(), serviceID, id, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

func (vh *VersionHandler) Update(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
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
	version, err := vh.versionService.Update(c.Request.Context(), serviceID, id, &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, version)
}

func (vh *VersionHandler) Delete(c *gin.Context) {
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := vh.versionService.Delete(c.Request.Context(), serviceID, id); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
