package validation

import "strings"

// KeyValue は商品仕様の1行です。
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Specification builds the specification map. Keys and values are trimmed; a blank
// row, a repeated key or an empty list is reported under "specification".
func Specification(pairs []KeyValue) (map[string]string, FieldErrors) {
	errs := FieldErrors{}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v := strings.TrimSpace(p.Key), strings.TrimSpace(p.Value)
		if k == "" || v == "" {
			errs.Add("specification", "Specification key and value are required.")
			continue
		}
		if _, dup := out[k]; dup {
			errs.Add("specification", "Specification key "+k+" already exists.")
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		errs.Add("specification", "At least one specification is required.")
	}
	return out, errs
}

// ParentExists は親カテゴリ名が現在の一覧にあるかを確認します。nil は親なしです。
func ParentExists(parent *string, names map[string]bool, errs FieldErrors) {
	if parent == nil || *parent == "" {
		return
	}
	if !names[*parent] {
		errs.Add("parent", "Parent category "+*parent+" does not exist.")
	}
}

// UniqueSKU reports a SKU already used by another loaded product.
func UniqueSKU(sku, selfRealID string, taken map[string]string, errs FieldErrors) {
	if owner, ok := taken[strings.TrimSpace(sku)]; ok && owner != selfRealID {
		errs.Add("sku", "SKU "+sku+" is already in use.")
	}
}
