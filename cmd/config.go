package main

import "time"

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,required=true"`
	FFmpegPath      string        `env:"FFMPEG_PATH,default=ffmpeg"`
	FFProbePath     string        `env:"FFPROBE_PATH,default=ffprobe"`
	TempDir         string        `env:"TEMP_DIR"`
	MaxUploadSizeMB int64         `env:"MAX_UPLOAD_SIZE_MB,default=64"`
	UploadWait      time.Duration `env:"UPLOAD_WAIT,default=30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// S3 upload target; leave the bucket empty to fall back to
	// RECORDINGS_DIR, or both empty to disable recording uploads.
	S3Bucket              string `env:"S3_BUCKET"`
	S3Region              string `env:"S3_REGION"`
	CognitoIdentityPoolID string `env:"COGNITO_IDENTITY_POOL_ID"`
	RecordingsDir         string `env:"RECORDINGS_DIR"`

	EnableDebugServer bool `env:"ENABLE_DEBUG_SERVER,default=false"`
	DebugPort         int  `env:"DEBUG_PORT,default=9999"`
}
