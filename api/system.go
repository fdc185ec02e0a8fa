package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type SystemSettingName string

const (
	// SystemSettingServiceIDName is the name of the service id.
	SystemSettingServiceIDName SystemSettingName = "service-id"
	// SystemSettingSecretSessionName is the name of the secret used to sign session tokens.
	SystemSettingSecretSessionName SystemSettingName = "secret-session"
	// SystemSettingAllowSignUpName is the name of the allow-signup toggle.
	SystemSettingAllowSignUpName SystemSettingName = "allow-signup"
	// SystemSettingAssetStorageServiceIDName selects the storage backend for uploaded assets.
	SystemSettingAssetStorageServiceIDName SystemSettingName = "asset-storage-service-id"
	// SystemSettingLocalStoragePathName is the path template for local asset storage.
	SystemSettingLocalStoragePathName SystemSettingName = "local-storage-path"
)

func (key SystemSettingName) String() string {
	return string(key)
}

type SystemSetting struct {
	Name SystemSettingName `json:"name"`
	// Value is a JSON string with basic value.
	Value       string `json:"value"`
	Description string `json:"description"`
}

type SystemSettingUpsert struct {
	Name        SystemSettingName `json:"name"`
	Value       string            `json:"value"`
	Description string            `json:"description"`
}

func (upsert SystemSettingUpsert) Validate() error {
	switch upsert.Name {
	case SystemSettingServiceIDName, SystemSettingSecretSessionName:
		var value string
		if err := json.Unmarshal([]byte(upsert.Value), &value); err != nil {
			return errors.Errorf("failed to unmarshal system setting %s value", upsert.Name)
		}
	case SystemSettingAllowSignUpName:
		var value bool
		if err := json.Unmarshal([]byte(upsert.Value), &value); err != nil {
			return errors.Errorf("failed to unmarshal system setting allow-signup value")
		}
	case SystemSettingAssetStorageServiceIDName:
		var value int
		if err := json.Unmarshal([]byte(upsert.Value), &value); err != nil {
			return errors.Errorf("failed to unmarshal system setting asset-storage-service-id value")
		}
	case SystemSettingLocalStoragePathName:
		var value string
		if err := json.Unmarshal([]byte(upsert.Value), &value); err != nil {
			return errors.Errorf("failed to unmarshal system setting local-storage-path value")
		}
	default:
		return errors.Errorf("invalid system setting name: %s", upsert.Name)
	}
	return nil
}

type SystemSettingFind struct {
	Name SystemSettingName `json:"name"`
}
