package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// EnvelopeKind はレスポンスの包み方の種類です。
type EnvelopeKind int

const (
	// KindBare is a payload with no recognised status field. It is treated as OK.
	KindBare EnvelopeKind = iota
	// KindStatus carries a status key. Only "Success" or true count as OK.
	KindStatus
	// KindSuccess carries success:true|false.
	KindSuccess
	// KindCapitalSuccess carries Success, Message and Data (banner endpoints).
	KindCapitalSuccess
)

func (k EnvelopeKind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindSuccess:
		return "success"
	case KindCapitalSuccess:
		return "Success"
	default:
		return "bare"
	}
}

// Result は正規化済みのレスポンスです。
type Result struct {
	Kind       EnvelopeKind
	OK         bool
	Message    string
	Data       json.RawMessage
	TotalCount int
}

// Decode は Data を v に展開します。Data が空なら何もしません。
func (r Result) Decode(v any) error {
	if len(r.Data) == 0 || bytes.Equal(r.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Decode is the generic form of Result.Decode.
func Decode[T any](r Result) (T, error) {
	var v T
	err := r.Decode(&v)
	return v, err
}

// Normalize は各エンドポイントで形の違うレスポンスを Result にそろえます。
func Normalize(raw []byte) (Result, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Result{Kind: KindBare, OK: true}, nil
	}
	if raw[0] != '{' {
		if !json.Valid(raw) {
			return Result{}, fmt.Errorf("failed to parse response: invalid JSON")
		}
		return Result{Kind: KindBare, OK: true, Data: json.RawMessage(raw)}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Result{}, fmt.Errorf("failed to parse response: %w", err)
	}

	res := Result{Kind: KindBare, OK: true}
	switch {
	case hasKey(fields, "status"):
		res.Kind = KindStatus
		res.OK = statusOK(fields["status"])
	case hasBool(fields, "success"):
		res.Kind = KindSuccess
		res.OK = boolField(fields, "success")
	case hasBool(fields, "Success"):
		res.Kind = KindCapitalSuccess
		res.OK = boolField(fields, "Success")
	}

	if res.Kind == KindBare {
		res.Data = json.RawMessage(raw)
		return res, nil
	}

	res.Message = MessageOf(fields)
	if d, ok := fields["data"]; ok {
		res.Data = d
	} else if d, ok := fields["Data"]; ok {
		res.Data = d
	}
	if tc, ok := fields["totalCount"]; ok {
		_ = json.Unmarshal(tc, &res.TotalCount)
	}
	return res, nil
}

// MessageOf は message、次に Message の順でサーバーのメッセージを取り出します。
func MessageOf(fields map[string]json.RawMessage) string {
	for _, key := range []string{"message", "Message"} {
		var s string
		if v, ok := fields[key]; ok && json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

func hasKey(fields map[string]json.RawMessage, key string) bool {
	_, ok := fields[key]
	return ok
}

// statusOK は "Success" の文字列か true のときだけ成功とみなします。
func statusOK(v json.RawMessage) bool {
	var s string
	if json.Unmarshal(v, &s) == nil {
		return strings.EqualFold(s, "Success")
	}
	var b bool
	if json.Unmarshal(v, &b) == nil {
		return b
	}
	return false
}

func hasBool(fields map[string]json.RawMessage, key string) bool {
	v, ok := fields[key]
	if !ok {
		return false
	}
	var b bool
	return json.Unmarshal(v, &b) == nil
}

func boolField(fields map[string]json.RawMessage, key string) bool {
	var b bool
	_ = json.Unmarshal(fields[key], &b)
	return b
}
