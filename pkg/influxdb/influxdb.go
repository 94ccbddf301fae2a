package influxdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benedict-erwin/weather-insight/config"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	v2oss "github.com/benedict-erwin/weather-insight/pkg/influxdb/v2-oss"
	v3core "github.com/benedict-erwin/weather-insight/pkg/influxdb/v3-core"
)

var (
	mu            sync.RWMutex
	currentClient Client
)

// ConfigFrom derives the InfluxDB settings from the application config. An
// empty version is detected from which fields are set.
func ConfigFrom(c *config.Config) Config {
	in := c.InfluxDB
	out := Config{Token: in.Token, Bucket: in.Bucket}

	switch in.Version {
	case string(VersionV2OSS):
		out.Version = VersionV2OSS
	case string(VersionV3Core):
		out.Version = VersionV3Core
	case "":
		if in.URL == "" && in.Host != "" {
			out.Version = VersionV3Core
		} else {
			out.Version = VersionV2OSS
		}
	default:
		logger.Warn().Str("version", in.Version).Msg("Unknown InfluxDB version, defaulting to v2-oss")
		out.Version = VersionV2OSS
	}

	switch out.Version {
	case VersionV2OSS:
		out.URL = in.URL
		if out.URL == "" {
			out.URL = fmt.Sprintf("http://%s:%d", in.Host, in.Port)
		}
		out.Org = in.Org
		if out.Org == "" {
			out.Org = "weather"
		}
	case VersionV3Core:
		out.Host = in.Host
		out.Port = in.Port
		out.AuthScheme = in.AuthScheme
	}
	return out
}

// New builds an uninitialised client for cfg.Version
func New(cfg Config) (Client, error) {
	switch cfg.Version {
	case VersionV2OSS:
		return &v2Client{Client: v2oss.New(cfg.URL, cfg.Token, cfg.Org, cfg.Bucket)}, nil
	case VersionV3Core:
		return &v3Client{Client: v3core.New(cfg.Host, cfg.Port, cfg.Token, cfg.AuthScheme, cfg.Bucket)}, nil
	default:
		return nil, fmt.Errorf("unsupported InfluxDB version: %q", cfg.Version)
	}
}

// Init creates, initialises and stores the process-wide client
func Init(cfg Config) (Client, error) {
	logger.Info().Str("version", string(cfg.Version)).Msg("Initializing InfluxDB client")

	client, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Init(); err != nil {
		return nil, err
	}

	mu.Lock()
	currentClient = client
	mu.Unlock()
	return client, nil
}

// Close shuts down the process-wide client
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if currentClient != nil {
		currentClient.Close()
		currentClient = nil
	}
}

// v2Client adapts the v2-oss client to the Client interface
type v2Client struct {
	*v2oss.Client
}

func (c *v2Client) NewPoint(measurement string, tags map[string]string, fields map[string]any, ts time.Time) any {
	return v2oss.NewPoint(measurement, tags, fields, ts)
}

func (c *v2Client) Query(ctx context.Context, query string) (QueryIterator, error) {
	it, err := c.Client.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (c *v2Client) Version() Version { return VersionV2OSS }

// v3Client adapts the v3-core client to the Client interface
type v3Client struct {
	*v3core.Client
}

func (c *v3Client) NewPoint(measurement string, tags map[string]string, fields map[string]any, ts time.Time) any {
	return v3core.NewPoint(measurement, tags, fields, ts)
}

func (c *v3Client) Query(ctx context.Context, query string) (QueryIterator, error) {
	it, err := c.Client.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (c *v3Client) Version() Version { return VersionV3Core }
