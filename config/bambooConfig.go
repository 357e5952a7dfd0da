package config

import "github.com/Xushengqwer/go-common/config"

type BambooConfig struct {
	ZapConfig       config.ZapConfig    `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	ServerConfig    config.ServerConfig `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig    config.TracerConfig `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	RedisConfig     RedisConfig         `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	KafkaConfig     KafkaConfig         `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	LifecycleConfig LifecycleConfig     `mapstructure:"lifecycleConfig" json:"lifecycleConfig" yaml:"lifecycleConfig"`
	SweeperConfig   SweeperConfig       `mapstructure:"sweeperConfig" json:"sweeperConfig" yaml:"sweeperConfig"`
}
