package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/price-bot/internal/config"
	"github.com/nguyentranbao-ct/price-bot/internal/kafka"
	"github.com/nguyentranbao-ct/price-bot/internal/server"
)

func TestDependencyGraph(t *testing.T) {
	conf := &config.Config{}
	assert.NoError(t, fx.ValidateApp(
		fx.NopLogger,
		Options(conf),
		fx.Invoke(server.StartServer, kafka.StartConsumer),
	))
}
