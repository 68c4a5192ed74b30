package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-live/smallid/internal/generator"
	pkglog "github.com/weiawesome/wes-io-live/smallid/pkg/log"
	"github.com/weiawesome/wes-io-live/smallid/pkg/response"
)

type HTTPHandler struct {
	gen generator.Generator
}

func NewHTTPHandler(gen generator.Generator) *HTTPHandler {
	return &HTTPHandler{gen: gen}
}

type GenerateIDResponse struct {
	ID string `json:"id"`
}

type GenerateBatchIDsResponse struct {
	IDs []string `json:"ids"`
}

type ValidateIDRequest struct {
	ID string `json:"id"`
}

type ValidateIDResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/ids", h.GenerateID)
		api.POST("/ids/validate", h.ValidateID)
		api.GET("/ids/:id", h.ParseID)
	}

	r.GET("/health", h.HealthCheck)
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path))
	})
}

// GenerateID returns a single id, or a batch when ?count= is present.
func (h *HTTPHandler) GenerateID(c *gin.Context) {
	logger := pkglog.Ctx(c.Request.Context())

	countStr, batch := c.GetQuery("count")
	if !batch {
		id, err := h.gen.Generate()
		if err != nil {
			logger.Error().Err(err).Msg("failed to generate id")
			response.InternalError(c, "failed to generate id")
			return
		}
		response.Success(c, GenerateIDResponse{ID: id})
		return
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		response.BadRequest(c, "count must be an integer")
		return
	}

	ids, err := h.gen.GenerateBatch(count)
	if err != nil {
		if errors.Is(err, generator.ErrInvalidCount) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error().Err(err).Int(pkglog.FieldCount, count).Msg("failed to generate batch ids")
		response.InternalError(c, "failed to generate batch ids")
		return
	}

	logger.Debug().Int(pkglog.FieldCount, len(ids)).Msg("generated batch")
	response.Success(c, GenerateBatchIDsResponse{IDs: ids})
}

func (h *HTTPHandler) ValidateID(c *gin.Context) {
	var req ValidateIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	valid, reason := h.gen.Validate(req.ID)
	response.Success(c, ValidateIDResponse{
		Valid:  valid,
		Reason: reason,
	})
}

func (h *HTTPHandler) ParseID(c *gin.Context) {
	result, err := h.gen.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, result)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
