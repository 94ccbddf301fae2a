package asynq

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/weather-insight/config"
)

func TestPeriodicTask_Spec(t *testing.T) {
	assert.Equal(t, "@every 10m0s", PeriodicTask{Every: 10 * time.Minute}.Spec())
	assert.Equal(t, "@every 30s", PeriodicTask{Every: 30 * time.Second}.Spec())
}

func TestRedisOpt(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Host = "redis"
	cfg.Redis.Port = 6390
	cfg.Asynq.DB = 3

	single, ok := RedisOpt(cfg).(asynq.RedisClientOpt)
	require.True(t, ok)
	assert.Equal(t, "redis:6390", single.Addr)
	assert.Equal(t, 3, single.DB)

	cfg.Redis.Mode = "cluster"
	cfg.Redis.Cluster.Nodes = []string{"n1:7000", "n2:7000"}
	cluster, ok := RedisOpt(cfg).(asynq.RedisClusterClientOpt)
	require.True(t, ok)
	assert.Equal(t, []string{"n1:7000", "n2:7000"}, cluster.Addrs)
}

func TestDispatch_Validation(t *testing.T) {
	c := NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:1"}, 5)
	defer c.Close()

	assert.ErrorIs(t, c.Dispatch(context.Background(), nil), ErrNilPayload)

	err := c.Dispatch(context.Background(), &Payload{TaskType: "x", Queue: "nope"})
	assert.ErrorContains(t, err, "invalid queue")
}

func TestNewScheduler_RejectsNonPositiveInterval(t *testing.T) {
	_, err := NewScheduler(asynq.RedisClientOpt{Addr: "127.0.0.1:1"}, time.UTC, PeriodicTask{TaskType: "x"})
	assert.Error(t, err)
}
