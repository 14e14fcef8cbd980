package catalog

import (
	"reflect"
	"testing"

	"github.com/bytedance/sonic"
)

func TestAggregateDecodeScalarAndValues(t *testing.T) {
	payload := `{
		"aggregations": {
			"minPrice": {"scalar": {"value": 10}},
			"maxPrice": {"scalar": {"value": 250.5}},
			"optionNames": {"values": {"results": [{"value": "Color"}, {"value": "Size"}]}}
		}
	}`
	res := &AggregateResponse{}
	if err := sonic.Unmarshal([]byte(payload), res); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v, ok := res.Scalar("minPrice"); !ok || v != 10 {
		t.Errorf("minPrice: got %v %v", v, ok)
	}
	if v, ok := res.Scalar("maxPrice"); !ok || v != 250.5 {
		t.Errorf("maxPrice: got %v %v", v, ok)
	}
	if got := res.Values("optionNames"); !reflect.DeepEqual(got, []string{"Color", "Size"}) {
		t.Errorf("optionNames: got %v", got)
	}
}

func TestAggregateDecodeAlternateKey(t *testing.T) {
	payload := `{"aggregationData": {"availability": {"values": {"results": [{"value": "IN_STOCK"}]}}}}`
	res := &AggregateResponse{}
	if err := sonic.Unmarshal([]byte(payload), res); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := res.Values("availability"); len(got) != 1 || got[0] != "IN_STOCK" {
		t.Errorf("expected the aggregationData key to be read, got %v", got)
	}
}

func TestAggregateAbsentEntries(t *testing.T) {
	res := &AggregateResponse{}
	if _, ok := res.Scalar("missing"); ok {
		t.Error("absent scalar reported present")
	}
	if got := res.Values("missing"); got != nil {
		t.Errorf("absent values: got %v", got)
	}
}

func TestAggregateNumericValues(t *testing.T) {
	payload := `{"aggregations": {"choiceNames": {"values": {"results": [{"value": 42}, {"value": "XL"}]}}}}`
	res := &AggregateResponse{}
	if err := sonic.Unmarshal([]byte(payload), res); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := res.Values("choiceNames"); !reflect.DeepEqual(got, []string{"42", "XL"}) {
		t.Errorf("numeric value not formatted: %v", got)
	}
}

func TestConjoin(t *testing.T) {
	if got := Conjoin(nil); got != nil {
		t.Errorf("no clauses should conjoin to nil, got %v", got)
	}
	single := Eq(FieldVisible, true)
	if got := Conjoin([]map[string]any{single}); !reflect.DeepEqual(got, single) {
		t.Errorf("single clause should stay bare, got %v", got)
	}
	both := Conjoin([]map[string]any{single, Gte(FieldActualPrice, 10.0)})
	clauses, ok := both["$and"].([]map[string]any)
	if !ok || len(clauses) != 2 {
		t.Errorf("expected $and with 2 clauses, got %v", both)
	}
}

func TestCatalogItemTolerantDecode(t *testing.T) {
	payload := `{"id": "p1", "unknownField": {"x": 1}}`
	item := struct {
		Id           string `json:"id"`
		VariantCount int    `json:"variantCount"`
	}{}
	if err := sonic.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if item.Id != "p1" || item.VariantCount != 0 {
		t.Errorf("got %+v", item)
	}
}
