package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fashionhub/api"
	"fashionhub/common"
)

func (s *Service) registerSystemRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, composeResponse(s.Profile))
	})

	rg.GET("/status", func(ctx *gin.Context) {
		systemStatus := map[string]any{
			"profile":     s.Profile,
			"allowSignUp": false,
		}

		allowSignUpSetting, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{
			Name: api.SystemSettingAllowSignUpName,
		})
		if err != nil && common.ErrorCode(err) != common.NotFound {
			ctx.String(http.StatusInternalServerError, "Failed to find system setting")
			return
		}
		if allowSignUpSetting != nil {
			var value bool
			if err := json.Unmarshal([]byte(allowSignUpSetting.Value), &value); err == nil {
				systemStatus["allowSignUp"] = value
			}
		}
		ctx.JSON(http.StatusOK, composeResponse(systemStatus))
	})

	rg.POST("/system/setting", s.roleGate(api.SuperAdmin), func(ctx *gin.Context) {
		upsert := &api.SystemSettingUpsert{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(upsert); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted post system setting request")
			return
		}
		if err := upsert.Validate(); err != nil {
			ctx.String(http.StatusBadRequest, "Invalid system setting request")
			return
		}

		setting, err := s.Store.UpsertSystemSetting(ctx, upsert)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to upsert system setting")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(setting))
	})

	rg.GET("/system/setting", s.roleGate(api.SuperAdmin), func(ctx *gin.Context) {
		list, err := s.Store.FindSystemSettingList(ctx, &api.SystemSettingFind{})
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find system setting list")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(list))
	})
}

func (s *Service) getSystemServiceID(ctx context.Context) (string, error) {
	serviceID, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{
		Name: api.SystemSettingServiceIDName,
	})
	if err != nil && common.ErrorCode(err) != common.NotFound {
		return "", err
	}
	if serviceID == nil || serviceID.Value == "" {
		serviceID, err = s.Store.UpsertSystemSetting(ctx, &api.SystemSettingUpsert{
			Name:  api.SystemSettingServiceIDName,
			Value: uuid.NewString(),
		})
		if err != nil {
			return "", err
		}
	}
	return serviceID.Value, nil
}

func (s *Service) getSystemSecretSessionName(ctx context.Context) (string, error) {
	secretSessionNameValue, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{
		Name: api.SystemSettingSecretSessionName,
	})
	if err != nil && common.ErrorCode(err) != common.NotFound {
		return "", err
	}
	if secretSessionNameValue == nil || secretSessionNameValue.Value == "" {
		secretSessionNameValue, err = s.Store.UpsertSystemSetting(ctx, &api.SystemSettingUpsert{
			Name:  api.SystemSettingSecretSessionName,
			Value: uuid.NewString(),
		})
		if err != nil {
			return "", err
		}
	}
	return secretSessionNameValue.Value, nil
}
