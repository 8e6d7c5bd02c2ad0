package foxapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is a unit price the service may encode as a JSON number or a numeric string.
type Price float64

// UnmarshalJSON accepts 1.5, "1.5" and "" (zero).
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", s, err)
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

// PriceItem is one project/country row of the price list.
type PriceItem struct {
	ItemID       string `json:"Item_ID"`
	ItemName     string `json:"Item_Name"`
	UnitPrice    Price  `json:"Item_UPrice"`
	CountryID    string `json:"Country_ID"`
	CountryTitle string `json:"Country_Title"`
}

// UnmarshalJSON accepts ids and titles sent as strings, numbers or null.
func (item *PriceItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemID       looseString `json:"Item_ID"`
		ItemName     looseString `json:"Item_Name"`
		UnitPrice    Price       `json:"Item_UPrice"`
		CountryID    looseString `json:"Country_ID"`
		CountryTitle looseString `json:"Country_Title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*item = PriceItem{
		ItemID:       string(raw.ItemID),
		ItemName:     string(raw.ItemName),
		UnitPrice:    raw.UnitPrice,
		CountryID:    string(raw.CountryID),
		CountryTitle: string(raw.CountryTitle),
	}
	return nil
}

// looseString keeps the literal text of a JSON string, number or bool.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = looseString(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

// DecodePriceItems decodes the getItem payload: a JSON array of items or a
// single item object, which becomes a one-element list.
func DecodePriceItems(payload string) ([]PriceItem, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return nil, fmt.Errorf("empty price list payload")
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []PriceItem
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []PriceItem{}
		}
		return items, nil
	}

	var item PriceItem
	if err := json.Unmarshal([]byte(trimmed), &item); err != nil {
		return nil, err
	}
	return []PriceItem{item}, nil
}
