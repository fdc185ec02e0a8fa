package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"fashionhub/api"
	"fashionhub/common"
	"fashionhub/common/log"
	"fashionhub/plugin/storage/s3"
)

const (
	// The max avatar file size is 8MB.
	maxFileSize = 8 << 20
)

var fileKeyPattern = regexp.MustCompile(`\{[a-z]{1,9}\}`)

func (s *Service) registerAssetRoutes(rg *gin.RouterGroup) {
	rg.POST("/asset/blob", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing user in session")
			return
		}

		if err := ctx.Request.ParseMultipartForm(maxFileSize); err != nil {
			ctx.String(http.StatusBadRequest, "Upload file overload max size")
			return
		}

		file, err := ctx.FormFile("file")
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to get uploading file")
			return
		}
		if file == nil {
			ctx.String(http.StatusBadRequest, "Upload file not found")
			return
		}

		filetype := file.Header.Get("Content-Type")
		size := file.Size
		sourceFile, err := file.Open()
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to open file")
			return
		}
		defer sourceFile.Close()

		assetCreate, errMessage := s.buildAssetCreate(ctx, user.ID, file.Filename, filetype, size, sourceFile)
		if errMessage != "" {
			ctx.String(http.StatusInternalServerError, errMessage)
			return
		}

		assetCreate.PublicID = common.GenUUID()
		asset, err := s.Store.CreateAsset(ctx, assetCreate)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to create asset")
			return
		}
		if err := s.createAssetCreateActivity(ctx, asset); err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to create activity")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(asset))
	})

	// Avatars render for any viewer, so serving by public id needs no
	// session.
	rg.GET("/asset/blob/:publicId", func(ctx *gin.Context) {
		publicID := ctx.Param("publicId")
		asset, err := s.Store.FindAsset(ctx, &api.AssetFind{PublicID: &publicID})
		if err != nil {
			if common.ErrorCode(err) == common.NotFound {
				ctx.String(http.StatusNotFound, "Asset not found")
				return
			}
			ctx.String(http.StatusInternalServerError, "Failed to find asset")
			return
		}

		if asset.ExternalLink != "" {
			ctx.Redirect(http.StatusFound, asset.ExternalLink)
			return
		}
		if asset.InternalPath != "" {
			ctx.Header("cache-control", "max-age=31536000, immutable")
			ctx.File(asset.InternalPath)
			return
		}

		blob, err := s.Store.FindAssetBlob(ctx, asset.ID)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to read asset blob")
			return
		}
		ctx.Header("cache-control", "max-age=31536000, immutable")
		ctx.Data(http.StatusOK, asset.Type, blob)
	})

	rg.GET("/asset", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing user in session")
			return
		}
		assetFind := &api.AssetFind{
			CreatorID: &user.ID,
		}
		if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
			assetFind.Limit = &limit
		}
		if offset, err := strconv.Atoi(ctx.Query("offset")); err == nil {
			assetFind.Offset = &offset
		}

		list, err := s.Store.FindAssetList(ctx, assetFind)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to fetch asset list")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(list))
	})

	rg.DELETE("/asset/:assetId", func(ctx *gin.Context) {
		user, ok, err := s.currentUser(ctx)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to find user")
			return
		}
		if !ok || user == nil {
			ctx.String(http.StatusUnauthorized, "Missing user in session")
			return
		}

		assetID, err := strconv.Atoi(ctx.Param("assetId"))
		if err != nil {
			ctx.String(http.StatusBadRequest, "ID is not a number")
			return
		}

		asset, err := s.Store.FindAsset(ctx, &api.AssetFind{ID: &assetID, CreatorID: &user.ID})
		if err != nil {
			if common.ErrorCode(err) == common.NotFound {
				ctx.String(http.StatusNotFound, "Asset not found")
				return
			}
			ctx.String(http.StatusInternalServerError, "Failed to find asset")
			return
		}

		if asset.InternalPath != "" {
			if err := os.Remove(asset.InternalPath); err != nil {
				log.Warn(fmt.Sprintf("failed to delete local file with path %s", asset.InternalPath), zap.Error(err))
			}
		}

		if err := s.Store.DeleteAsset(ctx, &api.AssetDelete{ID: assetID}); err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to delete asset")
			return
		}
		ctx.JSON(http.StatusOK, composeResponse(true))
	})
}

// buildAssetCreate routes the uploaded blob to the configured storage
// backend. It returns a user-facing error message instead of an error so the
// handler keeps a single response path.
func (s *Service) buildAssetCreate(ctx *gin.Context, userID int, filename, filetype string, size int64, sourceFile io.Reader) (*api.AssetCreate, string) {
	systemSettingStorageServiceID, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{Name: api.SystemSettingAssetStorageServiceIDName})
	if err != nil && common.ErrorCode(err) != common.NotFound {
		return nil, "Failed to find storage"
	}
	storageServiceID := api.DatabaseStorage
	if systemSettingStorageServiceID != nil {
		if err := json.Unmarshal([]byte(systemSettingStorageServiceID.Value), &storageServiceID); err != nil {
			return nil, "Failed to unmarshal storage service id"
		}
	}

	if storageServiceID == api.DatabaseStorage {
		fileBytes, err := io.ReadAll(sourceFile)
		if err != nil {
			return nil, "Failed to read file"
		}
		return &api.AssetCreate{
			CreatorID: userID,
			Filename:  filename,
			Type:      filetype,
			Size:      size,
			Blob:      fileBytes,
		}, ""
	}

	if storageServiceID == api.LocalStorage {
		systemSettingLocalStoragePath, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{Name: api.SystemSettingLocalStoragePathName})
		if err != nil && common.ErrorCode(err) != common.NotFound {
			return nil, "Failed to find local storage path setting"
		}
		localStoragePath := ""
		if systemSettingLocalStoragePath != nil {
			if err := json.Unmarshal([]byte(systemSettingLocalStoragePath.Value), &localStoragePath); err != nil {
				return nil, "Failed to unmarshal local storage path setting"
			}
		}
		filePath := localStoragePath
		if !strings.Contains(filePath, "{filename}") {
			filePath = path.Join(filePath, "{filename}")
		}
		filePath = filepath.Join(s.Profile.Data, replacePathTemplate(filePath, filename))
		dir, storedName := filepath.Split(filePath)
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, "Failed to create directory"
		}
		dst, err := os.Create(filePath)
		if err != nil {
			return nil, "Failed to create file"
		}
		defer dst.Close()
		if _, err := io.Copy(dst, sourceFile); err != nil {
			return nil, "Failed to copy file"
		}

		return &api.AssetCreate{
			CreatorID:    userID,
			Filename:     storedName,
			Type:         filetype,
			Size:         size,
			InternalPath: filePath,
		}, ""
	}

	storage, err := s.Store.FindStorage(ctx, &api.StorageFind{ID: &storageServiceID})
	if err != nil {
		return nil, "Failed to find storage"
	}
	if storage.Type != api.StorageS3 {
		return nil, "Unsupported storage type"
	}

	s3Config := storage.Config.S3Config
	s3Client, err := s3.NewClient(ctx, &s3.Config{
		AccessKey: s3Config.AccessKey,
		SecretKey: s3Config.SecretKey,
		EndPoint:  s3Config.EndPoint,
		Region:    s3Config.Region,
		Bucket:    s3Config.Bucket,
		URLPrefix: s3Config.URLPrefix,
		URLSuffix: s3Config.URLSuffix,
	})
	if err != nil {
		return nil, "Failed to new s3 client"
	}

	filePath := s3Config.Path
	if !strings.Contains(filePath, "{filename}") {
		filePath = path.Join(filePath, "{filename}")
	}
	filePath = replacePathTemplate(filePath, filename)
	_, storedName := filepath.Split(filePath)
	link, err := s3Client.UploadFile(ctx, filePath, filetype, sourceFile)
	if err != nil {
		return nil, "Failed to upload via s3 client"
	}
	return &api.AssetCreate{
		CreatorID:    userID,
		Filename:     storedName,
		Type:         filetype,
		Size:         size,
		ExternalLink: link,
	}, ""
}

func replacePathTemplate(path, filename string) string {
	t := time.Now()
	path = fileKeyPattern.ReplaceAllStringFunc(path, func(s string) string {
		switch s {
		case "{filename}":
			return filename
		case "{timestamp}":
			return fmt.Sprintf("%d", t.Unix())
		case "{year}":
			return fmt.Sprintf("%d", t.Year())
		case "{month}":
			return fmt.Sprintf("%02d", t.Month())
		case "{day}":
			return fmt.Sprintf("%02d", t.Day())
		}
		return s
	})
	return path
}

func (s *Service) createAssetCreateActivity(ctx *gin.Context, asset *api.Asset) error {
	payload := api.ActivityAssetCreatePayload{
		AssetID:  asset.ID,
		Filename: asset.Filename,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal activity payload")
	}
	activity, err := s.Store.CreateActivity(ctx, &api.ActivityCreate{
		CreatorID: asset.CreatorID,
		Type:      api.ActivityAssetCreate,
		Level:     api.ActivityInfo,
		Payload:   string(payloadBytes),
	})
	if err != nil || activity == nil {
		return errors.Wrap(err, "failed to create activity")
	}
	return err
}
