package service

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"fashionhub/api"
	"fashionhub/policy"
)

func (s *Service) registerPreferenceRoutes(rg *gin.RouterGroup) {
	rg.GET("/preference", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing auth session")
			return
		}

		set := s.Store.LoadPreferences(ctx, user.ID)
		ctx.JSON(http.StatusOK, composeResponse(set))
	})

	// One field per write, mirroring the storefront's per-key storage model.
	rg.POST("/preference", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing auth session")
			return
		}

		upsert := &api.UserPreferenceUpsert{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(upsert); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted post preference request")
			return
		}
		upsert.UserID = user.ID

		if err := upsert.Validate(); err != nil {
			ctx.String(http.StatusBadRequest, "Invalid preference request")
			return
		}

		// The selector UI only offers allowed controls, so a policy miss
		// here is a misbehaving caller, not a user-facing condition.
		if !policy.Check(user.Role, upsert.Key, upsert.Value) {
			ctx.String(http.StatusForbidden, "Preference is not mutable for the current role")
			return
		}

		pref := s.Store.UpsertUserPreference(ctx, upsert)
		if err := s.createPreferenceUpdateActivity(ctx, user.ID, upsert); err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to create activity")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(pref))
	})

	// The per-role field menu, for building selector surfaces.
	rg.GET("/preference/policy", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing auth session")
			return
		}

		allowed := map[string][]string{}
		for _, key := range policy.MutableFields(user.Role) {
			allowed[key.String()] = policy.AllowedValues(user.Role, key)
		}
		ctx.JSON(http.StatusOK, composeResponse(allowed))
	})
}

func (s *Service) createPreferenceUpdateActivity(ctx *gin.Context, userID int, upsert *api.UserPreferenceUpsert) error {
	payload := api.ActivityUserPreferenceUpdatePayload{
		UserID: userID,
		Key:    upsert.Key.String(),
		Value:  upsert.Value,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal activity payload")
	}
	activity, err := s.Store.CreateActivity(ctx, &api.ActivityCreate{
		CreatorID: userID,
		Type:      api.ActivityUserPreferenceUpdate,
		Level:     api.ActivityInfo,
		Payload:   string(payloadBytes),
	})
	if err != nil || activity == nil {
		return errors.Wrap(err, "failed to create activity")
	}
	return err
}
