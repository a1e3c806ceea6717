package main

import "time"

// Config is the container for app configuration
type Config struct {
	// LogLevel - one of logrus levels: debug, info, warn, error
	LogLevel string `default:"info"`

	// LogJSON - if true, logs are written as json
	LogJSON bool `default:"false"`

	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// HTTPRequestTimeout - timeout for handling single api request
	HTTPRequestTimeout time.Duration `default:"30s"`

	// UploadMaxSize - maximum size of uploaded résumé in bytes
	UploadMaxSize int64 `default:"10485760"`

	// UploadRate - max uploads per second from single client ip
	UploadRate float64 `default:"0.2"`

	// UploadBurst - max uploads at once from single client ip
	UploadBurst int `default:"5"`

	// AggregationTimeout - maximum duration of loading github data for one résumé
	AggregationTimeout time.Duration `default:"1m"`

	// AggregationWorkers - number of résumés processed at once
	AggregationWorkers int `default:"4"`

	// AggregationQueueSize - number of résumés waiting for processing
	AggregationQueueSize int `default:"100"`

	// AggregationConcurrency - max concurrent github requests per fetch group. Zero means unlimited
	AggregationConcurrency int `default:"8"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubAPIToken - auth token for github api (optional, rate limit is lower and contributions are not fetched without this token)
	GithubAPIToken string `default:""`

	// GithubAPITimeout - timeout of single github api call
	GithubAPITimeout time.Duration `default:"15s"`

	// SessionStore - session storage backend: memory, bolt or redis
	SessionStore string `default:"memory"`

	// SessionTTL - lifetime of upload session
	SessionTTL time.Duration `default:"1h"`

	// SessionMemorySize - maximum number of keys in memory session store
	SessionMemorySize int `default:"10000"`

	// SessionDBPath - filepath for bolt db data
	SessionDBPath string `default:"./sessions.data"`

	// SessionDBBucketName - bolt db bucket name
	SessionDBBucketName string `default:"sessions"`

	// RedisAddress - redis server address
	RedisAddress string `default:"localhost:6379"`

	// RedisPassword - redis password (optional)
	RedisPassword string `default:""`

	// RedisDB - redis database number
	RedisDB int `default:"0"`

	// RedisKeyPrefix - prefix of all keys stored in redis
	RedisKeyPrefix string `default:"gitinsight:"`
}
