package service

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"fashionhub/api"
	"fashionhub/guard"
)

type accessDecideRequest struct {
	RequiredRole *api.Role `json:"requiredRole"`
}

func (s *Service) registerAccessRoutes(rg *gin.RouterGroup) {
	// The SPA's protected-route wrapper asks for a decision on every render.
	rg.POST("/access/decide", func(ctx *gin.Context) {
		request := &accessDecideRequest{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(request); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted access decide request")
			return
		}

		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}

		viewerRole := api.Role("")
		isAuthenticated := ok && user != nil
		if isAuthenticated {
			viewerRole = user.Role
		}

		ctx.JSON(http.StatusOK, composeResponse(guard.Decide(isAuthenticated, request.RequiredRole, viewerRole)))
	})
}

// roleGate blocks a route group behind a required role using the same
// decision function the SPA consults. A denied API call answers 403 with the
// redirect target the client should navigate to.
func (s *Service) roleGate(requiredRole api.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			ctx.Abort()
			return
		}

		viewerRole := api.Role("")
		isAuthenticated := ok && user != nil
		if isAuthenticated {
			viewerRole = user.Role
		}

		decision := guard.Decide(isAuthenticated, &requiredRole, viewerRole)
		if !decision.Allow {
			status := http.StatusForbidden
			if decision.RedirectTo == guard.LoginPath {
				status = http.StatusUnauthorized
			}
			ctx.JSON(status, composeResponse(decision))
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
