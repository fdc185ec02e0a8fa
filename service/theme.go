package service

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fashionhub/api"
	"fashionhub/theme"
)

func (s *Service) registerThemeRoutes(rg *gin.RouterGroup) {
	// Resolved presentation state for the calling viewer. The client reports
	// its ambient dark preference; anonymous viewers get the defaults.
	rg.GET("/theme", func(ctx *gin.Context) {
		ambientDark := s.Ambient.Dark()
		if v := ctx.Query("ambientDark"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				ctx.String(http.StatusBadRequest, "Malformatted ambientDark query")
				return
			}
			ambientDark = parsed
		}

		set := api.DefaultPreferenceSet()
		role := api.Role("")
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if ok && user != nil {
			set = s.Store.LoadPreferences(ctx, user.ID)
			role = user.Role
		}

		ctx.JSON(http.StatusOK, composeResponse(theme.Resolve(set, role, ambientDark)))
	})
}
