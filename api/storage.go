package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Storage backends for uploaded assets. DatabaseStorage and LocalStorage are
// built-in pseudo ids; positive ids refer to configured external storages.
const (
	DatabaseStorage = -1
	LocalStorage    = -2
)

type StorageType string

const (
	StorageS3 StorageType = "S3"
)

func (t StorageType) String() string {
	return string(t)
}

type StorageConfig struct {
	S3Config *StorageS3Config `json:"s3Config"`
}

type StorageS3Config struct {
	EndPoint  string `json:"endPoint"`
	Path      string `json:"path"`
	Region    string `json:"region"`
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	Bucket    string `json:"bucket"`
	URLPrefix string `json:"urlPrefix"`
	URLSuffix string `json:"urlSuffix"`
}

type Storage struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Type   StorageType    `json:"type"`
	Config *StorageConfig `json:"config"`
}

type StorageCreate struct {
	Name   string         `json:"name"`
	Type   StorageType    `json:"type"`
	Config *StorageConfig `json:"config"`
}

func (create StorageCreate) Validate() error {
	if create.Name == "" {
		return errors.New("storage name is required")
	}
	if create.Type != StorageS3 {
		return errors.Errorf("unsupported storage type: %s", create.Type)
	}
	if create.Config == nil || create.Config.S3Config == nil {
		return errors.New("s3 config is required")
	}
	return nil
}

type StoragePatch struct {
	ID     int            `json:"id"`
	Name   *string        `json:"name"`
	Config *StorageConfig `json:"config"`
}

type StorageFind struct {
	ID *int `json:"id"`
}

type StorageDelete struct {
	ID int `json:"id"`
}

// UnmarshalStorageConfig decodes the JSON config column for the given type.
func UnmarshalStorageConfig(raw string, storageType StorageType) (*StorageConfig, error) {
	config := &StorageConfig{}
	if storageType == StorageS3 {
		s3Config := &StorageS3Config{}
		if err := json.Unmarshal([]byte(raw), s3Config); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal s3 config")
		}
		config.S3Config = s3Config
		return config, nil
	}
	return nil, errors.Errorf("unsupported storage type: %s", storageType)
}
