package domain

import "sort"

// CandlestickPoint is one time-bucketed price sample used to draw historical
// price charts. Price is a yes-price percentage in [0,100].
type CandlestickPoint struct {
	TS    int64   `json:"ts"`
	Price float64 `json:"price"`
}

// ClampPricePct bounds a raw extracted price to the valid [0,100] range.
func ClampPricePct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// NormalizeCandlesticks deduplicates points by timestamp (the last value for
// a timestamp wins) and returns them sorted ascending by timestamp.
func NormalizeCandlesticks(points []CandlestickPoint) []CandlestickPoint {
	if len(points) == 0 {
		return []CandlestickPoint{}
	}

	byTS := make(map[int64]float64, len(points))
	for _, p := range points {
		byTS[p.TS] = p.Price
	}

	out := make([]CandlestickPoint, 0, len(byTS))
	for ts, price := range byTS {
		out = append(out, CandlestickPoint{TS: ts, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TS < out[j].TS })
	return out
}
