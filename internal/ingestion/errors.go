package ingestion

import (
	"errors"
	"fmt"
)

// ErrFileTooLarge is returned for uploads above MaxUploadBytes.
var ErrFileTooLarge = errors.New("file exceeds upload size limit")

// UnsupportedFormatError reports an upload whose extension is not accepted.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("不支持的文件格式: %s", e.Ext)
}

// DocumentError reports a document that could not be decoded.
type DocumentError struct {
	Format string
	Cause  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("failed to read %s document: %v", e.Format, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
