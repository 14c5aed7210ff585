package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/calvinmclean/animatronic"
)

var eyeCommands = map[string][]byte{
	"open":       animatronic.Command(animatronic.FlagOpen),
	"close":      animatronic.Command(animatronic.FlagClose),
	"squint":     animatronic.Command(animatronic.FlagSquint),
	"dead":       animatronic.Command(animatronic.FlagDead),
	"look-left":  animatronic.Command(animatronic.FlagLook, 'L'),
	"look-right": animatronic.Command(animatronic.FlagLook, 'R'),
	"look-up":    animatronic.Command(animatronic.FlagLook, 'U'),
	"look-down":  animatronic.Command(animatronic.FlagLook, 'D'),
	"dilate":     animatronic.Command(animatronic.FlagPupil, '+'),
	"contract":   animatronic.Command(animatronic.FlagPupil, '-'),
	"infill":     animatronic.Command(animatronic.FlagInfill, '1'),
	"hollow":     animatronic.Command(animatronic.FlagInfill, '0'),
}

var animationCommands = map[string][]byte{
	"blink":               animatronic.Command(animatronic.FlagBlink),
	"color-cycle":         animatronic.Command(animatronic.FlagCycle, '+'),
	"color-cycle-reverse": animatronic.Command(animatronic.FlagCycle, '-'),
	"spiral-dot":          animatronic.Command(animatronic.FlagSpiral, 'D'),
	"spiral-line":         animatronic.Command(animatronic.FlagSpiral, 'L'),
}

var actuatorCommands = map[string][]byte{
	"retract": animatronic.Command(animatronic.FlagActuator, 'R'),
	"extend":  animatronic.Command(animatronic.FlagActuator, 'E'),
	"half":    animatronic.Command(animatronic.FlagActuator, 'H'),
	"unload":  animatronic.Command(animatronic.FlagActuator, 'U'),
	"bounce":  animatronic.Command(animatronic.FlagActuator, 'B'),
	"shake":   animatronic.Command(animatronic.FlagActuator, 'S'),
}

var jawCommands = map[string][]byte{
	"open":  animatronic.Command(animatronic.FlagJaw, 'O'),
	"close": animatronic.Command(animatronic.FlagJaw, 'C'),
	"laugh": animatronic.Command(animatronic.FlagJaw, 'L'),
}

func (s *Server) handleEyes(c *gin.Context) {
	action := c.Param("action")
	cmd, ok := eyeCommands[action]
	if !ok {
		notFound(c, "eye action", action)
		return
	}
	s.send(c, cmd)
}

func (s *Server) handleExpression(c *gin.Context) {
	name := c.Param("name")
	for e := animatronic.ExpressionNeutral; e <= animatronic.ExpressionConfused; e++ {
		if strings.EqualFold(e.String(), name) {
			s.send(c, animatronic.Command(animatronic.FlagExpress, e.Byte()))
			return
		}
	}
	notFound(c, "expression", name)
}

func (s *Server) handleStartAnimation(c *gin.Context) {
	name := c.Param("name")
	cmd, ok := animationCommands[name]
	if !ok {
		notFound(c, "animation", name)
		return
	}
	s.send(c, cmd)
}

func (s *Server) handleActuator(c *gin.Context) {
	move := c.Param("move")
	cmd, ok := actuatorCommands[move]
	if !ok {
		notFound(c, "actuator move", move)
		return
	}
	s.send(c, cmd)
}

func (s *Server) handleJaw(c *gin.Context) {
	move := c.Param("move")
	cmd, ok := jawCommands[move]
	if !ok {
		notFound(c, "jaw move", move)
		return
	}
	s.send(c, cmd)
}

func (s *Server) handleTilt(c *gin.Context) {
	var req TiltRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "invalid tilt request: " + err.Error(),
		})
		return
	}

	direction := byte('R')
	if req.Direction == "left" {
		direction = 'L'
	}
	s.send(c, animatronic.Command(animatronic.FlagTilt, direction, byte('0'+req.Amount)))
}

func (s *Server) handleSpeed(c *gin.Context) {
	var req SpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Status: "error",
			Error:  "invalid speed request: " + err.Error(),
		})
		return
	}
	s.send(c, animatronic.SpeedCommand(*req.Speed))
}
