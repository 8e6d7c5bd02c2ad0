package foxapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Price
		wantErr bool
	}{
		{`1.5`, 1.5, false},
		{`"2.25"`, 2.25, false},
		{`" 3 "`, 3, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"abc"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var p Price
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestDecodePriceItems_Array(t *testing.T) {
	items, err := DecodePriceItems(`[{"Item_ID":"1","Item_Name":"A","Item_UPrice":"0.5","Country_ID":"US","Country_Title":"United States"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, PriceItem{
		ItemID:       "1",
		ItemName:     "A",
		UnitPrice:    0.5,
		CountryID:    "US",
		CountryTitle: "United States",
	}, items[0])
}

func TestDecodePriceItems_NumericFields(t *testing.T) {
	items, err := DecodePriceItems(`[{"Item_ID":1,"Item_Name":"x","Item_UPrice":0.5,"Country_ID":86,"Country_Title":"CN"},{"Item_ID":1002,"Item_Name":null}]`)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, PriceItem{
		ItemID:       "1",
		ItemName:     "x",
		UnitPrice:    0.5,
		CountryID:    "86",
		CountryTitle: "CN",
	}, items[0])
	assert.Equal(t, "1002", items[1].ItemID)
	assert.Empty(t, items[1].ItemName)
}

func TestDecodePriceItems_SingleObject(t *testing.T) {
	items, err := DecodePriceItems(` {"Item_ID":"9","Item_Name":"Solo","Item_UPrice":2} `)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Solo", items[0].ItemName)
	assert.Equal(t, Price(2), items[0].UnitPrice)
}

func TestDecodePriceItems_EmptyArray(t *testing.T) {
	items, err := DecodePriceItems(`[]`)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDecodePriceItems_Invalid(t *testing.T) {
	for _, payload := range []string{"", "   ", "not json", `[{"Item_ID":`, `"a string"`, `[{"Item_ID":{"a":1}}]`} {
		_, err := DecodePriceItems(payload)
		assert.Error(t, err, "payload %q", payload)
	}
}
