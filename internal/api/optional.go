package api

import "encoding/json"

// Optional 紀錄 JSON 欄位是否出現（Set）以及是否為 null（Null），
// 供部分更新區分「未提供」與「清空」
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some 建立一個已設定的值，主要給測試與呼叫端組裝請求使用
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Or 未提供時回傳 fallback
func (o Optional[T]) Or(fallback T) T {
	if !o.Set || o.Null {
		return fallback
	}
	return o.Value
}
