package models

import "encoding/json"

// Orders, transactions and cash closures are mirrored wholesale from the
// backend. This layer stores them and never interprets the payload fields.

type Order struct {
	ID     string          `json:"id"`
	Date   string          `json:"date,omitempty"`
	Waiter string          `json:"waiter,omitempty"`
	Items  json.RawMessage `json:"items,omitempty"`
	Total  int64           `json:"total,omitempty"`
	Status string          `json:"status,omitempty"`
}

type Transaction struct {
	ID     string          `json:"id"`
	Date   string          `json:"date,omitempty"`
	Type   string          `json:"type,omitempty"`
	Amount int64           `json:"amount,omitempty"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

type CashClosure struct {
	ID     string          `json:"id"`
	Date   string          `json:"date,omitempty"`
	Total  int64           `json:"total,omitempty"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// ShopConfig is the singleton configuration record served as the first
// element of the config collection. An empty collection yields an empty
// ShopConfig.
type ShopConfig map[string]any
