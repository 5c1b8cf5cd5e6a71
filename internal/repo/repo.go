package repo

import (
	"strings"

	"inventory-admin/internal/domain"
)

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

// dupConflict 把数据库唯一索引冲突翻译成业务 Conflict。
// 唯一索引才是唯一性的最终保障，service 层的预检查只是快速失败。
func dupConflict(err error, byToken map[string]string, fallback string) error {
	if err == nil || !isDupKey(err) {
		return err
	}
	msg := strings.ToLower(err.Error())
	for token, friendly := range byToken {
		if strings.Contains(msg, token) {
			return &domain.ConflictError{Message: friendly}
		}
	}
	return &domain.ConflictError{Message: fallback}
}
