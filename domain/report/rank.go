package report

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// UsageRecord is one row of the transactions usage dictionary. Rows keep
// whatever columns the pipeline produced; sorting only reads direction and
// amount.
type UsageRecord map[string]interface{}

func (r UsageRecord) direction() string {
	v, ok := r["direction"]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.ToLower(s)
	}
	return strings.ToLower(stringify(v))
}

func (r UsageRecord) amount() float64 {
	switch v := r["amount"].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func stringify(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.Trim(string(b), `"`)
}

// SortUsageRecords orders usage rows by direction ascending
// (case-insensitive) then amount descending. The sort is stable so rows that
// tie on both keys keep their artifact order.
func SortUsageRecords(records []UsageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := records[i].direction(), records[j].direction()
		if di != dj {
			return di < dj
		}
		return records[i].amount() > records[j].amount()
	})
}
