package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"rmassistant/internal/domain"
	_ "rmassistant/internal/logger"
	"rmassistant/internal/metrics"
	"rmassistant/internal/repository"
	"rmassistant/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Disclaimer is attached to every AI-bearing response.
const Disclaimer = "Decision-support only. Verify independently. Not a credit decision or approval."

// How long a single narrative enhancement attempt may take before we fall
// back to the deterministic text. One attempt, no retries.
const enhancementTimeout = 20 * time.Second

type ApiHandler struct {
	Db                   *sql.DB
	GuardrailService     service.GuardrailService
	ReadinessService     service.ReadinessService
	NarrativeService     service.NarrativeService
	ScoreService         service.ScoreService
	GptRepository        repository.GptRepository
	ApiRequestRepository repository.ApiRequestRepository
}

func int64Ptr(i int64) *int64 {
	return &i
}
func int32Ptr(i int32) *int32 {
	return &i
}
func strPtr(s string) *string {
	return &s
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{
			"status":          "ok",
			"assess_endpoint": "POST /assess",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/assess", m.assess)
	router.POST("/ai/explain", m.aiExplain)
	router.POST("/ai/qa", m.aiQa)
	router.POST("/api/score", m.score)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	zap.S().Warn(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// returnRequestError maps the two user-visible error kinds to 400 with a
// machine-readable code; everything else is a 500.
func returnRequestError(err error, c *gin.Context) {
	var validationErr domain.ValidationError
	var sensitiveErr domain.SensitiveDataError

	switch {
	case errors.As(err, &sensitiveErr):
		metrics.GuardrailRejectionsTotal.WithLabelValues(c.Request.URL.Path).Inc()
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": sensitiveErr.Error(),
			"code":  "sensitive_data_detected",
			"field": sensitiveErr.Field,
		})
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
			"code":  "validation_error",
			"field": validationErr.Field,
		})
	default:
		returnErrorJson(err, c)
	}
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// logRequestMiddleware persists the transport envelope of every request to
// the audit table. Audit failures are logged and never fail the request;
// with no Db configured the middleware only restores the request body.
func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	log := zap.S()

	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	body, err := ctx.GetRawData()
	if err != nil {
		log.Warnf("failed to get raw data: %v", err)
	}
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	if m.Db == nil || m.ApiRequestRepository == nil {
		ctx.Next()
		return
	}

	start := time.Now().UTC()
	req, err := m.ApiRequestRepository.Add(m.Db, repository.ApiRequest{
		IPAddress:   strPtr(ctx.ClientIP()),
		Method:      ctx.Request.Method,
		Route:       ctx.Request.URL.Path,
		RequestBody: strPtr(string(body)),
		StartTs:     start,
	})
	if err != nil {
		log.Warnf("failed to record api request: %v", err)
	}

	ctx.Next()

	if req != nil {
		req.DurationMs = int64Ptr(time.Since(start).Milliseconds())
		req.StatusCode = int32Ptr(int32(ctx.Writer.Status()))
		req.ResponseBody = strPtr(w.body.String())

		if err := m.ApiRequestRepository.Update(m.Db, *req); err != nil {
			log.Warnf("failed to update api request: %v", err)
		}
	}
}
