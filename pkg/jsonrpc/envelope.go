package jsonrpc

import (
	"encoding/json"

	"github.com/spindlework/a2a-runtime/pkg/errors"
)

// Version is the protocol version carried in every envelope we emit. The
// field is recorded on ingress but deliberately not validated; whether to
// reject mismatched versions is server policy.
const Version = "2.0"

/*
MessageIdentifier carries the request identifier shared by requests and
responses. Responses must echo the ID of the request they relate to.
*/
type MessageIdentifier struct {
	ID any `json:"id,omitempty"`
}

/*
Message is the base envelope embedded in every JSON-RPC message.
*/
type Message struct {
	MessageIdentifier
	JSONRPC string `json:"jsonrpc,omitempty"`
}

/*
Request is a JSON-RPC 2.0 request envelope. Params are kept raw so the
method handler decodes them into its own parameter type.
*/
type Request struct {
	Message
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

/*
Response is a JSON-RPC 2.0 response envelope. Exactly one of Result or
Error is set.
*/
type Response struct {
	Message
	Result any              `json:"result,omitempty"`
	Error  *errors.RpcError `json:"error,omitempty"`
}

/*
NewRequest builds a request envelope for the given method, id and
pre-encoded params.
*/
func NewRequest(method string, id any, params json.RawMessage) Request {
	return Request{
		Message: Message{
			MessageIdentifier: MessageIdentifier{ID: id},
			JSONRPC:           Version,
		},
		Method: method,
		Params: params,
	}
}

/*
NewResult wraps a result value in a success envelope echoing the request id.
*/
func NewResult(id any, result any) Response {
	return Response{
		Message: Message{
			MessageIdentifier: MessageIdentifier{ID: id},
			JSONRPC:           Version,
		},
		Result: result,
	}
}

/*
NewError wraps an RpcError in an error envelope echoing the request id.
*/
func NewError(id any, rpcErr *errors.RpcError) Response {
	if rpcErr == nil {
		rpcErr = errors.ErrInternal
	}

	return Response{
		Message: Message{
			MessageIdentifier: MessageIdentifier{ID: id},
			JSONRPC:           Version,
		},
		Error: rpcErr,
	}
}

/*
Decode parses a request envelope from a raw body. A malformed body yields
ErrParseError; a body missing the jsonrpc or id members yields
ErrInvalidRequest. The version string itself is surfaced as-is.
*/
func Decode(body []byte) (Request, *errors.RpcError) {
	var probe map[string]json.RawMessage

	if err := json.Unmarshal(body, &probe); err != nil {
		return Request{}, errors.ErrParseError.WithMessagef("malformed request body: %v", err)
	}

	if _, ok := probe["jsonrpc"]; !ok {
		return Request{}, errors.ErrInvalidRequest.WithMessagef("missing jsonrpc member")
	}

	if _, ok := probe["id"]; !ok {
		return Request{}, errors.ErrInvalidRequest.WithMessagef("missing id member")
	}

	var req Request

	if err := json.Unmarshal(body, &req); err != nil {
		return Request{}, errors.ErrInvalidRequest.WithMessagef("invalid request envelope: %v", err)
	}

	return req, nil
}

/*
DecodeParams unmarshals the raw params of a request into the method's
parameter type, mapping failures to ErrInvalidParams.
*/
func DecodeParams(req Request, out any) *errors.RpcError {
	if len(req.Params) == 0 {
		return errors.ErrInvalidParams.WithMessagef("missing params")
	}

	if err := json.Unmarshal(req.Params, out); err != nil {
		return errors.ErrInvalidParams.WithMessagef("failed to unmarshal params: %v", err)
	}

	return nil
}
