package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// LenientAmount は数値・数値文字列・null を受け付ける金額です。
// Anything else decodes to Valid=false instead of failing the whole payload.
type LenientAmount struct {
	decimal.NullDecimal
}

func (a *LenientAmount) UnmarshalJSON(raw []byte) error {
	a.NullDecimal = decimal.NullDecimal{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		text = strings.TrimSpace(s)
	} else if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return nil
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	a.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

// MarshalJSON writes the amount as a number, or null when it is not valid.
func (a LenientAmount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}
