package errors

import "fmt"

/*
RpcError represents a JSON-RPC error response.
*/
type RpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

/*
Error implements the error interface for RpcError.
*/
func (e *RpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC 2.0 error codes.
var (
	ErrParseError     = &RpcError{Code: -32700, Message: "Parse error"}
	ErrInvalidRequest = &RpcError{Code: -32600, Message: "Invalid Request"}
	ErrMethodNotFound = &RpcError{Code: -32601, Message: "Method not found"}
	ErrInvalidParams  = &RpcError{Code: -32602, Message: "Invalid params"}
	ErrInternal       = &RpcError{Code: -32603, Message: "Internal error"}
)

// A2A-specific error codes (-32001 .. -32006).
var (
	ErrTaskNotFound            = &RpcError{Code: -32001, Message: "Task not found"}
	ErrTaskNotCancelable       = &RpcError{Code: -32002, Message: "Task cannot be canceled"}
	ErrPushNotSupported        = &RpcError{Code: -32003, Message: "Push notifications not supported"}
	ErrUnsupportedOperation    = &RpcError{Code: -32004, Message: "Unsupported operation"}
	ErrContentTypeNotSupported = &RpcError{Code: -32005, Message: "Incompatible content types"}
	ErrInvalidAgentResponse    = &RpcError{Code: -32006, Message: "Invalid agent response"}
)

/*
WithMessagef creates a copy of an RpcError with a formatted message. The
sentinel values above are shared and must never be mutated in place.
*/
func (e *RpcError) WithMessagef(format string, args ...any) *RpcError {
	newErr := *e
	newErr.Message = fmt.Sprintf(format, args...)
	return &newErr
}

/*
WithData creates a copy of an RpcError carrying additional detail data.
*/
func (e *RpcError) WithData(data any) *RpcError {
	newErr := *e
	newErr.Data = data
	return &newErr
}
