package main

import (
	"context"
	"fmt"
	"net"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/m-zajac/gitinsight/internal/adapter/github"
	"github.com/m-zajac/gitinsight/internal/adapter/pdf"
	"github.com/m-zajac/gitinsight/internal/adapter/session"
	"github.com/m-zajac/gitinsight/internal/api/http"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/m-zajac/gitinsight/internal/database"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("couldn't parse config: %v", err)
	}
	if level, err := logrus.ParseLevel(conf.LogLevel); err == nil {
		l.Level = level
	} else {
		l.Warnf("invalid log level %q, using info", conf.LogLevel)
	}
	if conf.LogJSON {
		l.Formatter = &logrus.JSONFormatter{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kvStore, closeStore, err := newKVStore(ctx, conf)
	if err != nil {
		l.Fatalf("couldn't create session kv store: %v", err)
	}
	defer closeStore()

	githubClient := github.NewClient(
		newHTTPClient(conf.GithubAPITimeout),
		conf.GithubAPIAddress,
		conf.GithubAPIToken,
	)
	if conf.GithubAPIToken == "" {
		l.Warn("github api token is not set, rate limits are low and contributions won't be loaded")
	}

	aggregatorConf := app.DefaultAggregatorConfig()
	aggregatorConf.Credential = conf.GithubAPIToken
	aggregatorConf.Concurrency = conf.AggregationConcurrency
	aggregator := app.NewAggregator(
		githubClient,
		aggregatorConf,
		l.WithField("component", "aggregator"),
	)

	service := app.NewService(
		pdf.NewExtractor(conf.UploadMaxSize, l.WithField("component", "pdfExtractor")),
		aggregator,
		session.NewStore(kvStore, conf.SessionTTL, l.WithField("component", "sessionStore")),
		app.ServiceConfig{
			AggregationTimeout: conf.AggregationTimeout,
			Workers:            conf.AggregationWorkers,
			QueueSize:          conf.AggregationQueueSize,
		},
		l.WithField("component", "service"),
	)
	service.RunScheduler()
	defer service.Close()

	mux := http.NewMux(
		service,
		http.MuxConfig{
			Timeout:       conf.HTTPRequestTimeout,
			MaxUploadSize: conf.UploadMaxSize,
			UploadRate:    conf.UploadRate,
			UploadBurst:   conf.UploadBurst,
		},
		l.WithField("component", "mux"),
	)
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)

	if err := server.Run(ctx); err != nil {
		l.Errorf("http server returned error: %v", err)
	}
}

func newKVStore(ctx context.Context, conf Config) (session.KVStore, func(), error) {
	switch conf.SessionStore {
	case "memory":
		s, err := database.NewMemoryKVStore(conf.SessionMemorySize)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case "bolt":
		s, err := database.NewBoltKVStore(conf.SessionDBPath, conf.SessionDBBucketName)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     conf.RedisAddress,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		s, err := database.NewRedisKVStore(pingCtx, client, conf.RedisKeyPrefix, conf.SessionTTL)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", conf.SessionStore)
	}
}

// newHTTPClient creates http client tuned for many concurrent requests to a single host.
func newHTTPClient(timeout time.Duration) *netHttp.Client {
	return &netHttp.Client{
		Timeout: timeout,
		Transport: &netHttp.Transport{
			Proxy: netHttp.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: time.Second,
		},
	}
}
