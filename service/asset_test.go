package service

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"fashionhub/api"
)

func uploadAvatar(t *testing.T, c *testClient, filename, filetype string, content []byte) *api.Asset {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", filetype)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/asset/blob", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	asset := &api.Asset{}
	decodeData(t, w, asset)
	return asset
}

func TestAvatarUploadServeAndDelete(t *testing.T) {
	s := newTestService(t)
	admin := &testClient{t: t, engine: s.Engine()}
	signUp(t, admin, "amelia", "secret123", "")

	// Without a configured backend the blob lands in the database.
	content := []byte("avatar-bytes")
	asset := uploadAvatar(t, admin, "avatar.png", "image/png", content)
	require.NotEmpty(t, asset.PublicID)
	require.Equal(t, "image/png", asset.Type)
	require.Equal(t, int64(len(content)), asset.Size)

	// Anyone can fetch an avatar by public id, no session required.
	anonymous := &testClient{t: t, engine: s.Engine()}
	w := anonymous.do(http.MethodGet, "/api/asset/blob/"+asset.PublicID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, content, w.Body.Bytes())
	require.Equal(t, "image/png", w.Result().Header.Get("Content-Type"))

	// The upload shows up in the owner's audit trail.
	w = admin.do(http.MethodGet, "/api/user/me/activity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var activities []*api.Activity
	decodeData(t, w, &activities)
	types := []api.ActivityType{}
	for _, activity := range activities {
		types = append(types, activity.Type)
	}
	require.Contains(t, types, api.ActivityAssetCreate)
	require.Contains(t, types, api.ActivityUserAuthSignUp)

	w = admin.do(http.MethodGet, "/api/asset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []*api.Asset
	decodeData(t, w, &list)
	require.Len(t, list, 1)
	require.Equal(t, asset.ID, list[0].ID)

	// Another user cannot delete an asset they do not own.
	w = admin.do(http.MethodPost, "/api/system/setting", map[string]any{
		"name":  api.SystemSettingAllowSignUpName,
		"value": "true",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	shopper := &testClient{t: t, engine: s.Engine()}
	signUp(t, shopper, "shopper", "secret123", "")
	w = shopper.do(http.MethodDelete, fmt.Sprintf("/api/asset/%d", asset.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = admin.do(http.MethodDelete, fmt.Sprintf("/api/asset/%d", asset.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = anonymous.do(http.MethodGet, "/api/asset/blob/"+asset.PublicID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssetUploadRequiresSession(t *testing.T) {
	s := newTestService(t)
	anonymous := &testClient{t: t, engine: s.Engine()}

	w := anonymous.do(http.MethodPost, "/api/asset/blob", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
