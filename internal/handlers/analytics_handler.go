package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) salesAnalytics(c *gin.Context) {
	report, err := a.analytics.Sales(c.Request.Context(), c.Query("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
