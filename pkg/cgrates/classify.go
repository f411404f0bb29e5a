package cgrates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/buger/jsonparser"
)

// classify priority: transport error, status code, "error" field, "result".
func classify(statusCode int, body []byte, sendErr error) (any, json.RawMessage, error) {
	if sendErr != nil {
		return nil, nil, &TransportError{Err: sendErr}
	}

	if statusCode != http.StatusOK {
		return nil, nil, &ProtocolError{StatusCode: statusCode, Body: body}
	}

	data := bytes.TrimSpace(body)
	if len(data) == 0 || data[0] != '{' || !json.Valid(data) {
		return nil, nil, &ProtocolError{StatusCode: statusCode, Body: body}
	}

	errValue, errType, _, err := jsonparser.Get(data, "error")
	if err != nil && errType != jsonparser.NotExist {
		return nil, nil, &ProtocolError{StatusCode: statusCode, Body: body}
	}

	if isTruthyJSON(errValue, errType) {
		return nil, nil, newRPCError(errValue, errType)
	}

	resValue, resType, _, err := jsonparser.Get(data, "result")
	if resType == jsonparser.NotExist || resType == jsonparser.Null {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, &ProtocolError{StatusCode: statusCode, Body: body}
	}

	raw, err := rawJSON(resValue, resType)
	if err != nil {
		return nil, nil, &ProtocolError{StatusCode: statusCode, Body: body}
	}

	var result any
	if err = json.Unmarshal(raw, &result); err != nil {
		return nil, nil, &ProtocolError{StatusCode: statusCode, Body: body}
	}

	return result, raw, nil
}

func isTruthyJSON(value []byte, dataType jsonparser.ValueType) bool {
	switch dataType { //nolint:exhaustive
	case jsonparser.String:
		return len(value) > 0
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		return err != nil || f != 0
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		return err == nil && b
	case jsonparser.Object, jsonparser.Array:
		return true
	}
	return false
}

func newRPCError(value []byte, dataType jsonparser.ValueType) *RPCError {
	raw, err := rawJSON(value, dataType)
	if err != nil {
		raw = value
	}

	if dataType == jsonparser.String {
		if msg, err := jsonparser.ParseString(value); err == nil {
			return &RPCError{Message: msg, Value: raw}
		}
	}

	return &RPCError{Message: string(raw), Value: raw}
}

// rawJSON jsonparser отдает строки без кавычек, возвращаем их обратно.
func rawJSON(value []byte, dataType jsonparser.ValueType) (json.RawMessage, error) {
	if dataType != jsonparser.String {
		return json.RawMessage(value), nil
	}

	s, err := jsonparser.ParseString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse string: %w", err)
	}

	quoted, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string: %w", err)
	}

	return quoted, nil
}
