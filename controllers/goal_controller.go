package controllers

import (
	"net/http"
	"strconv"

	"github.com/Bhaskar125/macro-tracking-webapp/nutrition"
	"github.com/Bhaskar125/macro-tracking-webapp/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{Goals: goals}
}

func (h *GoalController) Get(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	goal, err := h.Goals.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalController) Upsert(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var req services.GoalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	goal, err := h.Goals.Upsert(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// POST /goals/calculate?apply=true with a profile body. With apply the
// result also becomes the user's goal.
func (h *GoalController) Calculate(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var profile nutrition.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, err.Error())
		return
	}
	apply, _ := strconv.ParseBool(c.DefaultQuery("apply", "false"))

	if !apply {
		calc, err := h.Goals.Calculate(profile)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"calculated": calc})
		return
	}

	calc, goal, err := h.Goals.ApplyCalculated(c.Request.Context(), uid, profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculated": calc, "goal": goal})
}
