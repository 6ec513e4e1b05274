package costing

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/google/uuid"
)

// ItemOverride is one entry of the per-item override side table embedded in
// Estimate.OverridesBlob. Nil fields are absent; an explicit zero markup
// still counts as an override.
type ItemOverride struct {
	MarkupPct         *float64
	Taxable           *bool
	LabourJourney     *float64
	LabourMen         *float64
	LabourJourneyType *string
}

// OverrideSet keys overrides by "item_<id>", the key format used in stored
// blobs.
type OverrideSet map[string]ItemOverride

// ParseOverrides decodes an overrides blob of the form
// {"item_extras": {"item_<id>": {...}}}. The merge is best effort: a missing,
// empty or malformed blob resolves to no overrides, and a bad field inside an
// entry resolves to that field being absent. It never fails, so blobs written
// by older versions of the editor keep working.
func ParseOverrides(blob string) OverrideSet {
	if blob == "" {
		return OverrideSet{}
	}
	var wrapper struct {
		ItemExtras map[string]json.RawMessage `json:"item_extras"`
	}
	if err := json.Unmarshal([]byte(blob), &wrapper); err != nil {
		return OverrideSet{}
	}
	set := make(OverrideSet, len(wrapper.ItemExtras))
	for key, raw := range wrapper.ItemExtras {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		set[key] = ItemOverride{
			MarkupPct:         decodeNumber(fields["markup_pct"]),
			Taxable:           decodeBool(fields["taxable"]),
			LabourJourney:     decodeNumber(fields["labour_journey"]),
			LabourMen:         decodeNumber(fields["labour_men"]),
			LabourJourneyType: decodeString(fields["labour_journey_type"]),
		}
	}
	return set
}

// For returns the override for an item, or the empty override when none is
// stored.
func (s OverrideSet) For(itemID uuid.UUID) ItemOverride {
	return s["item_"+itemID.String()]
}

// decodeNumber accepts JSON numbers and numeric strings; anything else,
// including an explicit null, counts as absent.
func decodeNumber(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return &n
		}
	}
	return nil
}

func decodeBool(raw json.RawMessage) *bool {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseBool(s); err == nil {
			return &parsed
		}
	}
	return nil
}

func decodeString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	return &s
}
