package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/config"
	"github.com/Xushengqwer/bamboo_service/models/events"
)

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("序列化 Kafka 事件失败", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("发送 Kafka 消息",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("写入 Kafka 消息失败", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("成功发送 Kafka 消息", zap.String("topic", topic))
	}
	return err
}

// SendPostCreatedEvent 发送帖子创建事件到 Kafka
// - 意图: 将新发布的帖子内容交给打标服务做异步标签分析
// - 输入: ctx context.Context 上下文, postID string 帖子ID, content string 帖子内容
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostCreatedEvent(ctx context.Context, postID string, content string) error {
	event := events.PostCreatedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		PostID:    postID,
		Content:   content,
	}
	return p.SendEvent(ctx, p.topics.PostCreated, event)
}

// SendPostArchivedEvent 发送帖子归档事件到 Kafka
// - 意图: 把离开活跃区的帖子（拉黑/到期/进名人堂）的最终快照交给归档网关
// - 输入: ctx context.Context 上下文, reason string 归档原因, postData events.PostData 最终快照
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostArchivedEvent(ctx context.Context, reason string, postData events.PostData) error {
	event := events.PostArchivedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Reason:    reason,
		Post:      postData,
	}
	return p.SendEvent(ctx, p.topics.PostArchived, event)
}

// Close 关闭底层的 Kafka writer。
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
