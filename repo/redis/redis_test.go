package redis

import (
	"testing"

	"github.com/Xushengqwer/go-common/core"
	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	appConfig "github.com/Xushengqwer/bamboo_service/config"
)

// 测试里把阈值压低，几次操作就能穿越完整的生命周期。
func testLifecycle() appConfig.LifecycleConfig {
	return appConfig.LifecycleConfig{
		DefaultTTLSeconds:   600,
		ExtensionSeconds:    300,
		ExtensionThreshold:  5,
		BlindThreshold:      3,
		HallOfFameThreshold: 4,
		ArchiveGraceSeconds: 3600,
	}
}

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func goredisZ(score float64, member string) goredis.Z {
	return goredis.Z{Score: score, Member: member}
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{
		Level:    "error",
		Encoding: "console",
	})
	require.NoError(t, err)
	return logger
}
