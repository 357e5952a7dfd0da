package myErrors

import "errors"

// ErrInvalidContent 表示帖子内容为空或超过长度上限，属于调用方错误，不应重试。
var ErrInvalidContent = errors.New("post: content is empty or exceeds the length limit")

// ErrPostNotFound 表示帖子不存在、已逻辑过期或已被清扫。
var ErrPostNotFound = errors.New("post: not found or already retired")

// ErrOperationRejected 表示帖子当前状态不允许该操作（例如对已拉黑的帖子推荐）。
var ErrOperationRejected = errors.New("post: operation not permitted in current status")
