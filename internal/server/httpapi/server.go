package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/logging"
	"github.com/whoestate/backend/internal/server/auth"
	"github.com/whoestate/backend/internal/server/config"
	"github.com/whoestate/backend/internal/server/intakes"
	"github.com/whoestate/backend/internal/server/messages"
	"github.com/whoestate/backend/internal/server/properties"
	"github.com/whoestate/backend/internal/server/trackviews"
	"github.com/whoestate/backend/internal/server/uploads"
	"github.com/whoestate/backend/internal/server/users"

	"github.com/whoestate/backend/internal/server/featureoptions"
)

// Server groups the services behind the HTTP surface.
type Server struct {
	auth           *auth.Service
	users          *users.Service
	properties     *properties.Service
	messages       *messages.Service
	intakes        intakes.Repository
	featureOptions featureoptions.Repository
	trackViews     *trackviews.Service
	uploads        *uploads.Service
	logger         logging.Logger
	secret         []byte
}

func NewServer(
	authSvc *auth.Service,
	userSvc *users.Service,
	propertySvc *properties.Service,
	messageSvc *messages.Service,
	intakeRepo intakes.Repository,
	featureOptionRepo featureoptions.Repository,
	trackViewSvc *trackviews.Service,
	uploadSvc *uploads.Service,
	logger logging.Logger,
	cfg *config.Config,
) *Server {
	return &Server{
		auth:           authSvc,
		users:          userSvc,
		properties:     propertySvc,
		messages:       messageSvc,
		intakes:        intakeRepo,
		featureOptions: featureOptionRepo,
		trackViews:     trackViewSvc,
		uploads:        uploadSvc,
		logger:         logger.With("module", "httpapi"),
		secret:         []byte(cfg.SecretKey),
	}
}

// Router builds the full route table.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authed := Auth(s.secret)
	admin := RequireRole(common.RoleAdmin)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", s.login)
		authGroup.POST("/forgot-password", s.forgotPassword)
		authGroup.POST("/reset-password", s.resetPassword)
	}

	userGroup := api.Group("/user")
	{
		userGroup.PUT("/:id/password", authed, s.updatePassword)
		userGroup.GET("/me", authed, s.currentProfile)
		userGroup.POST("", authed, admin, s.createUser)
		userGroup.GET("", authed, admin, s.listUsers)
		userGroup.GET("/:id", authed, admin, s.getUser)
		userGroup.PUT("/:id", authed, s.updateUser)
		userGroup.DELETE("/:id", authed, admin, s.deleteUser)
	}

	propertyGroup := api.Group("/properties")
	{
		propertyGroup.GET("", s.listProperties)
		propertyGroup.GET("/query", s.queryProperties)
		propertyGroup.GET("/lastsix", s.lastSixProperties)
		propertyGroup.GET("/count", s.countProperties)
		propertyGroup.GET("/:id", s.getProperty)
		propertyGroup.POST("", authed, s.createProperty)
		propertyGroup.PUT("/:id", authed, s.updateProperty)
		propertyGroup.DELETE("/:id", authed, s.deleteProperty)
	}

	messageGroup := api.Group("/messages")
	{
		messageGroup.POST("", s.createMessage)
		messageGroup.GET("", authed, s.listMessages)
		messageGroup.GET("/:id", authed, s.getMessage)
		messageGroup.PUT("/:id/read", authed, s.markMessageRead)
		messageGroup.DELETE("/:id", authed, s.deleteMessage)
	}

	intakeGroup := api.Group("/client-intake", authed)
	{
		intakeGroup.POST("", s.createIntake)
		intakeGroup.GET("", s.listIntakes)
		intakeGroup.GET("/:id", s.getIntake)
		intakeGroup.DELETE("/:id", s.deleteIntake)
	}

	featureGroup := api.Group("/feature-options")
	{
		featureGroup.GET("", s.listFeatureOptions)
		featureGroup.POST("", authed, admin, s.createFeatureOption)
		featureGroup.DELETE("/:id", authed, admin, s.deleteFeatureOption)
	}

	trackGroup := api.Group("/track-view", authed)
	{
		trackGroup.POST("", s.recordView)
		trackGroup.GET("/user", s.listViewsByUser)
		trackGroup.GET("/property/:id", s.listViewsByProperty)
		trackGroup.GET("/property/:id/count", s.countViews)
	}

	uploadGroup := api.Group("/file-upload", authed)
	{
		uploadGroup.POST("/presign", s.presignUpload)
		uploadGroup.GET("/presign/*key", s.presignDownload)
	}

	return router
}

// writeError maps service errors onto the API's {"message": ...} shape.
// Credential rejections are 400 and never conflated with server faults.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid or expired token"})
	case errors.Is(err, common.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "token has expired"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid credentials"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, common.ErrorConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "already exists"})
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
