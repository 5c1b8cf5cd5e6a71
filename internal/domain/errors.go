package domain

import (
	"errors"
	"fmt"
)

// NotFoundError 对应 404：目标 ID 没有存活行
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// ConflictError 对应 409：唯一字段冲突
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StorageError 对象存储上传失败（删除失败只记日志，不会走到这里）
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// InvalidInputError 对应 400：通过了绑定校验但语义非法（如日期串解析失败）
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsConflict(err error) bool {
	var t *ConflictError
	return errors.As(err, &t)
}

func IsStorageError(err error) bool {
	var t *StorageError
	return errors.As(err, &t)
}

func IsInvalidInput(err error) bool {
	var t *InvalidInputError
	return errors.As(err, &t)
}
