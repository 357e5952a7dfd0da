package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	PostCreated  string `mapstructure:"postCreated" yaml:"postCreated"`   // 帖子创建主题，打标服务消费
	PostTagged   string `mapstructure:"postTagged" yaml:"postTagged"`     // 打标完成回调主题，本服务消费
	PostArchived string `mapstructure:"postArchived" yaml:"postArchived"` // 归档移交主题，归档网关消费
}
