// Package api exposes the head's command protocol over HTTP
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/calvinmclean/animatronic"
)

// Sender delivers one protocol command to the head. controller.Controller implements it
type Sender interface {
	Send(cmd []byte) error
}

type Server struct {
	sender    Sender
	startTime time.Time
	version   string
}

func NewServer(sender Sender) *Server {
	return &Server{
		sender:    sender,
		startTime: time.Now(),
		version:   "1.0.0",
	}
}

// NewEngine creates a gin engine with permissive CORS so browser dashboards can call the API
func NewEngine() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

func (s *Server) SetupRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", s.handleHealth)
		v1.POST("/reset", s.handleSimple(animatronic.Command(animatronic.FlagReset)))

		v1.POST("/eyes/:action", s.handleEyes)
		v1.POST("/expression/:name", s.handleExpression)

		animations := v1.Group("/animations")
		{
			animations.POST("/:name", s.handleStartAnimation)
			animations.DELETE("", s.handleSimple(animatronic.Command(animatronic.FlagStop)))
		}

		v1.POST("/actuator/:move", s.handleActuator)
		v1.POST("/tilt", s.handleTilt)
		v1.POST("/jaw/:move", s.handleJaw)
		v1.PUT("/speed", s.handleSpeed)
	}
}

func (s *Server) send(c *gin.Context, cmd []byte) {
	err := s.sender.Send(cmd)
	if err != nil {
		c.JSON(http.StatusBadGateway, ApiResponse{
			Status: "error",
			Error:  "error sending command: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   CommandResponse{Command: string(cmd)},
	})
}

func notFound(c *gin.Context, kind, name string) {
	c.JSON(http.StatusNotFound, ApiResponse{
		Status: "error",
		Error:  "unknown " + kind + ": " + name,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: HealthResponse{
			Version: s.version,
			Uptime:  time.Since(s.startTime).Round(time.Second).String(),
		},
	})
}

func (s *Server) handleSimple(cmd []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.send(c, cmd)
	}
}
