package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// envelope 服务端两种信封：{code,message,data} 和 {success,message,data}
type envelope struct {
	Code    *int            `json:"code"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e *envelope) ok() bool {
	if e.Code != nil {
		return *e.Code == http.StatusOK
	}
	if e.Success != nil {
		return *e.Success
	}
	return false
}

func (e *envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// decodeEnvelope 成功时返回 data 部分
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{Kind: KindDecode, Msg: "响应解析失败", Err: err}
	}
	if env.Code == nil && env.Success == nil {
		return nil, &APIError{Kind: KindDecode, Msg: "响应格式不正确", Err: fmt.Errorf("missing code/success in %q", truncate(body, 120))}
	}
	if !env.ok() {
		msg := env.message()
		if msg == "" {
			msg = "请求失败"
		}
		apiErr := &APIError{Kind: KindLogical, Msg: msg}
		if env.Code != nil {
			apiErr.Code = *env.Code
			if apiErr.Code == http.StatusNotFound {
				apiErr.Err = ErrNotFound
			}
		}
		return nil, apiErr
	}
	return env.Data, nil
}

// serverMessage 从错误响应体里尽量取出服务端文案
func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.message()
}

// isNull data 缺失或为 null
func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// List 列表接口的统一结果
type List[T any] struct {
	Items []T
	Total int
}

var defaultListKeys = []string{"items", "list", "data", "records", "results"}

// decodeList 兼容 data 直接是数组，或 {total, <key>: [...]} / {pagination: {total}} 对象
func decodeList[T any](raw json.RawMessage, keys ...string) (List[T], error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return List[T]{Items: []T{}}, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return List[T]{}, &APIError{Kind: KindDecode, Msg: "列表数据解析失败", Err: err}
		}
		return List[T]{Items: nonNil(items), Total: len(items)}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return List[T]{}, &APIError{Kind: KindDecode, Msg: "列表数据解析失败", Err: err}
	}

	candidates := append(append([]string{}, keys...), defaultListKeys...)
	var items []T
	for _, key := range candidates {
		v, ok := obj[key]
		if !ok || isNull(v) {
			continue
		}
		if err := json.Unmarshal(v, &items); err != nil {
			return List[T]{}, &APIError{Kind: KindDecode, Msg: "列表数据解析失败", Err: err}
		}
		break
	}

	total := -1
	for _, key := range []string{"total", "total_count", "count"} {
		if v, ok := obj[key]; ok && json.Unmarshal(v, &total) == nil {
			break
		}
	}
	if total < 0 {
		if v, ok := obj["pagination"]; ok {
			var p struct {
				Total int `json:"total"`
			}
			if json.Unmarshal(v, &p) == nil {
				total = p.Total
			}
		}
	}
	if total < 0 {
		total = len(items)
	}
	return List[T]{Items: nonNil(items), Total: total}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
