package config

import (
	"os"
	"sync"
)

type StorageConfig struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		region := os.Getenv("S3_REGION")
		if region == "" {
			region = "auto"
		}
		storageConfig = &StorageConfig{
			Bucket:    os.Getenv("S3_BUCKET"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    region,
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		}
	})
	return storageConfig
}

func (c *StorageConfig) Enabled() bool {
	return c.Bucket != ""
}
