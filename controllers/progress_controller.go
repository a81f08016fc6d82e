package controllers

import (
	"net/http"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *services.ProgressService
	Export   *services.ExportService
	Loc      *time.Location
}

func NewProgressController(progress *services.ProgressService, export *services.ExportService, loc *time.Location) *ProgressController {
	return &ProgressController{Progress: progress, Export: export, Loc: loc}
}

// GET /dashboard?date=&tz=
func (h *ProgressController) Dashboard(c *gin.Context) {
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
	out, err := h.Progress.Daily(c.Request.Context(), uid, day, loc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /progress/history?from=&to= defaults to the last 30 days.
func (h *ProgressController) History(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	loc, ok := location(c, h.Loc)
	if !ok {
		return
	}
	to, ok := dayParam(c, "to", loc)
	if !ok {
		return
	}
	from := to.AddDate(0, 0, -29)
	if c.Query("from") != "" {
		if from, ok = dayParam(c, "from", loc); !ok {
			return
		}
	}

	rows, err := h.Progress.History(c.Request.Context(), uid, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /export?date=&tz=
func (h *ProgressController) ExportDay(c *gin.Context) {
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
	res, err := h.Export.ExportDay(c.Request.Context(), uid, day, loc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
