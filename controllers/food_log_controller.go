package controllers

import (
	"net/http"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"
	"github.com/Bhaskar125/macro-tracking-webapp/services"

	"github.com/gin-gonic/gin"
)

type FoodLogController struct {
	Logs *services.FoodLogService
	Loc  *time.Location
}

func NewFoodLogController(logs *services.FoodLogService, loc *time.Location) *FoodLogController {
	return &FoodLogController{Logs: logs, Loc: loc}
}

// POST /logs {"food_id":1,"quantity":150,"meal":"lunch"}
func (h *FoodLogController) Create(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var input services.FoodLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	entry, err := h.Logs.Log(c.Request.Context(), uid, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /logs?date=2024-06-01&meal=lunch&tz=Europe/Berlin
func (h *FoodLogController) List(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	loc, ok := location(c, h.Loc)
	if !ok {
		return
	}
	day, ok := dayParam(c, "date", loc)
	if !ok {
		return
	}
	var meal *models.MealType
	if v := c.Query("meal"); v != "" {
		m, err := models.ParseMealType(v)
		if err != nil {
			respondError(c, err)
			return
		}
		meal = &m
	}

	entries, err := h.Logs.ListForDay(c.Request.Context(), uid, day, loc, meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day.Format(dateLayout), "entries": entries})
}

func (h *FoodLogController) Replace(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.FoodLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	entry, err := h.Logs.Replace(c.Request.Context(), uid, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *FoodLogController) Delete(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Logs.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
