package service

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"fashionhub/api"
)

func (s *Service) registerUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/me", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing auth session")
			return
		}

		preferenceList, err := s.Store.FindUserPreferenceList(ctx, &api.UserPreferenceFind{
			UserID: user.ID,
		})
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find preference list")
			return
		}
		user.PreferenceList = preferenceList
		ctx.JSON(http.StatusOK, composeResponse(user))
	})

	// Recent audit trail for the session user, newest first.
	rg.GET("/user/me/activity", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing auth session")
			return
		}

		limit := 20
		if v, err := strconv.Atoi(ctx.Query("limit")); err == nil && v > 0 && v <= 100 {
			limit = v
		}
		list, err := s.Store.FindActivityList(ctx, user.ID, limit)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find activity list")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(list))
	})

	rg.PATCH("/user/me", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing auth session")
			return
		}

		userPatch := &api.UserPatch{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(userPatch); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted patch user request")
			return
		}
		userPatch.ID = user.ID

		if err := userPatch.Validate(); err != nil {
			ctx.String(http.StatusBadRequest, "Invalid patch user request")
			return
		}

		if userPatch.Password != nil && *userPatch.Password != "" {
			passwordHash, err := bcrypt.GenerateFromPassword([]byte(*userPatch.Password), bcrypt.DefaultCost)
			if err != nil {
				ctx.String(http.StatusInternalServerError, "Failed to generate password hash")
				return
			}
			passwordHashStr := string(passwordHash)
			userPatch.PasswordHash = &passwordHashStr
		}

		patchedUser, err := s.Store.PatchUser(ctx, userPatch)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to patch user")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(patchedUser))
	})
}
