// controllers/analytics_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
	Loc *time.Location
}

func NewAnalyticsController(svc *services.AnalyticsService, loc *time.Location) *AnalyticsController {
	return &AnalyticsController{Svc: svc, Loc: loc}
}

// GET /analytics/summary?from=&to=&includeMissingDays= defaults to the
// current month.
func (h *AnalyticsController) GetAnalyticsSummary(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}
	loc, ok := location(c, h.Loc)
	if !ok {
		return
	}

	now := time.Now().In(loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	from, err := time.ParseInLocation(dateLayout, c.DefaultQuery("from", first.Format(dateLayout)), loc)
	if err != nil {
		badRequest(c, "invalid from date")
		return
	}
	to, err := time.ParseInLocation(dateLayout, c.DefaultQuery("to", last.Format(dateLayout)), loc)
	if err != nil {
		badRequest(c, "invalid to date")
		return
	}
	if to.Before(from) {
		badRequest(c, "`to` must be on/after `from`")
		return
	}
	includeMissing := c.DefaultQuery("includeMissingDays", "false") == "true"

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to, includeMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /analytics/weekly?week_start=&mode=chart|detailed
func (h *AnalyticsController) GetWeeklyOverview(c *gin.Context) {
	userID, ok := mustUser(c)
	if !ok {
		return
	}
	loc, ok := location(c, h.Loc)
	if !ok {
		return
	}

	weekStart := startOfWeek(time.Now().In(loc))
	if v := c.Query("week_start"); v != "" {
		ws, err := time.ParseInLocation(dateLayout, v, loc)
		if err != nil {
			badRequest(c, "invalid week_start")
			return
		}
		weekStart = startOfWeek(ws)
	}
	mode := c.DefaultQuery("mode", services.ModeDetailed)

	out, err := h.Svc.WeeklyOverview(c.Request.Context(), userID, weekStart, mode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// startOfWeek is the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	tt := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return tt.AddDate(0, 0, -(wd - 1))
}
