package config

// RedisConfig 包含帖子记录存储 (Redis) 的连接配置。
// 超时必须有界：到存储的连通性故障要快速失败，让调用方按可重试的瞬时错误处理，
// 绝不允许请求在存储上无限期阻塞。
type RedisConfig struct {
	// Address 形如 "localhost:6379"。
	Address  string `mapstructure:"address" json:"address" yaml:"address"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`

	// PoolSize 连接池大小，0 时使用 go-redis 默认值 (10 * GOMAXPROCS)。
	PoolSize int `mapstructure:"pool_size" json:"pool_size" yaml:"pool_size"`

	// 以下超时单位为秒，0 时使用默认值 5。
	DialTimeoutSeconds  int `mapstructure:"dial_timeout_seconds" json:"dial_timeout_seconds" yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds" json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}
