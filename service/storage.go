package service

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fashionhub/api"
	"fashionhub/common"
)

func (s *Service) registerStorageRoutes(rg *gin.RouterGroup) {
	storageGroup := rg.Group("/storage")
	storageGroup.Use(s.roleGate(api.SuperAdmin))

	storageGroup.POST("", func(ctx *gin.Context) {
		storageCreate := &api.StorageCreate{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(storageCreate); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted post storage request")
			return
		}
		if err := storageCreate.Validate(); err != nil {
			ctx.String(http.StatusBadRequest, "Invalid storage request")
			return
		}

		storage, err := s.Store.CreateStorage(ctx, storageCreate)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to create storage")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(storage))
	})

	storageGroup.PATCH("/:storageId", func(ctx *gin.Context) {
		storageID, err := strconv.Atoi(ctx.Param("storageId"))
		if err != nil {
			ctx.String(http.StatusBadRequest, "ID is not a number")
			return
		}

		storagePatch := &api.StoragePatch{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(storagePatch); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted patch storage request")
			return
		}
		storagePatch.ID = storageID

		storage, err := s.Store.PatchStorage(ctx, storagePatch)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to patch storage")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(storage))
	})

	storageGroup.GET("", func(ctx *gin.Context) {
		list, err := s.Store.FindStorageList(ctx, &api.StorageFind{})
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find storage list")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(list))
	})

	storageGroup.DELETE("/:storageId", func(ctx *gin.Context) {
		storageID, err := strconv.Atoi(ctx.Param("storageId"))
		if err != nil {
			ctx.String(http.StatusBadRequest, "ID is not a number")
			return
		}

		// Refuse to delete the backend assets are currently routed to.
		systemSetting, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{Name: api.SystemSettingAssetStorageServiceIDName})
		if err != nil && common.ErrorCode(err) != common.NotFound {
			ctx.String(http.StatusInternalServerError, "Failed to find asset storage setting")
			return
		}
		if systemSetting != nil {
			var value int
			if err := json.Unmarshal([]byte(systemSetting.Value), &value); err == nil && value == storageID {
				ctx.String(http.StatusBadRequest, "Storage is in use, change the asset storage first")
				return
			}
		}

		if err := s.Store.DeleteStorage(ctx, &api.StorageDelete{ID: storageID}); err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to delete storage")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(true))
	})
}
