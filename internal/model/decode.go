package model

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// decodeInto maps one raw payload object onto out with weak typing, so a
// numeric source_attribution stringifies and a string count parses if it can.
// Field-level failures leave the zero value in place rather than failing the
// record; the caller only sees an error when the item is not an object at all.
func decodeInto(item map[string]any, out any) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return
	}
	// Partial decode on error is intentional: mismatched fields degrade to
	// their zero values while the rest of the record survives.
	_ = dec.Decode(item)
}

// DecodeEvents decodes an untrusted collector payload into tracking events.
// Unknown fields are ignored, mismatched fields degrade per-field, and
// non-object items are dropped. Only a malformed envelope is an error.
func DecodeEvents(payload []byte) ([]TrackingEvent, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decoding events payload: %w", err)
	}

	events := make([]TrackingEvent, 0, len(raw))
	for _, item := range raw {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		var ev TrackingEvent
		decodeInto(obj, &ev)
		if ev.TimeToLiveSeconds < 0 {
			ev.TimeToLiveSeconds = 0
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeAggregates decodes an untrusted collector payload into aggregate
// records. A missing destinations array becomes empty and negative counts
// clamp to zero.
func DecodeAggregates(payload []byte) ([]AggregateRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decoding aggregates payload: %w", err)
	}

	aggregates := make([]AggregateRecord, 0, len(raw))
	for _, item := range raw {
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		var rec AggregateRecord
		decodeInto(obj, &rec)
		if rec.Count < 0 {
			rec.Count = 0
		}
		if rec.UniqueClientCount < 0 {
			rec.UniqueClientCount = 0
		}
		if rec.Destinations == nil {
			rec.Destinations = []string{}
		}
		aggregates = append(aggregates, rec)
	}
	return aggregates, nil
}
