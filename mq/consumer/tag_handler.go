package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/bamboo_service/models/events"
	"github.com/Xushengqwer/bamboo_service/service"
)

// todo  未配置死信队列

// TaggedHandler 消费打标服务回调的 PostTaggedEvent，把标签写回帖子记录。
type TaggedHandler struct {
	logger      *core.ZapLogger
	postService service.PostService
}

func NewTaggedHandler(logger *core.ZapLogger, postService service.PostService) *TaggedHandler {
	return &TaggedHandler{
		logger:      logger,
		postService: postService,
	}
}

func (h *TaggedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	h.logger.Debug("TaggedHandler: 开始处理 Kafka 消息", zap.String("topic", msg.Topic))

	var event events.PostTaggedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("TaggedHandler: 反序列化 Kafka 消息失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil // 不重试无法解析的消息
	}

	h.logger.Info("TaggedHandler: 成功解析打标完成消息",
		zap.String("event_id", event.EventID),
		zap.String("post_id", event.PostID),
		zap.Strings("tags", event.Tags))

	// 帖子在打标完成前就离开了活跃区时，写回在存储层是 no-op，
	// 这里只需要处理真正的存储错误
	err := h.postService.SetPostTags(ctx, event.PostID, event.Tags)
	if err != nil {
		h.logger.Error("TaggedHandler: 写回标签失败",
			zap.String("post_id", event.PostID),
			zap.Error(err))
		return fmt.Errorf("写回帖子 (ID: %s) 标签失败: %w", event.PostID, err)
	}

	h.logger.Info("TaggedHandler: 标签写回成功", zap.String("post_id", event.PostID))
	return nil
}
