// Package errors provides the structured error taxonomy (coded
// ErrorDetails/BaseError) and stack-tracing wrapper (ErrorTracer) used by
// the ambient/domain layers. The core book/dispatcher packages never
// return errors for business-as-usual conditions; this package is for
// infrastructure failures talking to Kafka, Redis, or the wire.
package errors

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
)

// ErrorCode identifies a specific, stable error condition.
type ErrorCode string

const (
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	GeneralBadRequestError     ErrorCode = "general_bad_request_error"

	KafkaReadError    ErrorCode = "kafka_read_error"
	KafkaWriteError   ErrorCode = "kafka_write_error"
	KafkaDecodeError  ErrorCode = "kafka_decode_error"
	KafkaOffsetError  ErrorCode = "kafka_offset_error"

	RedisConfigError        ErrorCode = "redis_config_error"
	RedisConnectionError    ErrorCode = "redis_connection_error"
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	RedisPingError          ErrorCode = "redis_pinging_error"
	RedisGetError           ErrorCode = "redis_get_error"
	RedisSetError           ErrorCode = "redis_set_error"
	RedisDelError           ErrorCode = "redis_del_error"

	SnapshotMarshalError   ErrorCode = "snapshot_marshal_error"
	SnapshotUnmarshalError ErrorCode = "snapshot_unmarshal_error"

	WireDecodeError ErrorCode = "wire_decode_error"
)

// Severity classifies how urgently an error needs attention.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Category classifies the subsystem an error originated in.
type Category string

const (
	CategoryNetwork        Category = "network"
	CategoryValidation     Category = "validation"
	CategoryBusinessLogic  Category = "business_logic"
	CategoryExternal       Category = "external"
	CategoryUnknown        Category = "unknown"
)

// BaseError is an error type backed by a list of ErrorDetails, with helpers
// for bulk transformation (renaming fields, replacing codes) as errors
// propagate up through layered call sites.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError constructs a BaseError from one or more ErrorDetails.
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails appends more ErrorDetails to the error.
func (b *BaseError) AddErrorDetails(details ...*ErrorDetails) {
	b.details = append(b.details, details...)
}

// GetDetails returns the ErrorDetails backing this error.
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// Error implements the error interface.
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")
	buff.WriteString("Error on\n")
	for _, d := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(d.Code)
		buff.WriteString("; error: ")
		buff.WriteString(d.Error())
		buff.WriteString("; field: ")
		buff.WriteString(d.Field)
		buff.WriteString("; object: ")
		if d.Object != nil {
			buff.WriteString(reflect.TypeOf(d.Object).String())
		}
		buff.WriteString("\n")
	}
	return strings.TrimSpace(buff.String())
}

// UpdateCode sets every ErrorDetails' code to code.
func (b *BaseError) UpdateCode(code string) {
	for _, d := range b.details {
		d.Code = code
	}
}

// IsAnyCodeEqual reports whether any ErrorDetails has the given code.
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.details {
		if d.Code == code {
			return true
		}
	}
	return false
}

// PrependFields prepends prefix to every non-empty ErrorDetails field.
func (b *BaseError) PrependFields(prefix string) {
	for _, d := range b.details {
		if d.Field == "" {
			continue
		}
		d.Field = fmt.Sprintf("%s%s", prefix, d.Field)
	}
}
