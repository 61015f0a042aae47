package datatune

// MaxStreams is the largest number of data streams a tune voices.
const MaxStreams = 4

// DataBounds summarises a whole dataset for scaling note generation.
type DataBounds struct {
	Streams    int     // number of streams, at most MaxStreams
	MainStream int     // 1-based index of the busiest stream, 0 if no data
	MaxVal     float64 // largest non-negative value in any stream, 0 if none
}

// StreamCount returns the number of streams implied by the first row,
// capped to MaxStreams.
func StreamCount(data Dataset) int {
	first, ok := data.First()
	if !ok {
		return 0
	}
	n := (first.Len() - 1) / FieldsPerStream
	return max(0, min(n, MaxStreams))
}

// ComputeBounds counts the streams, finds the stream with the most values
// (lowest index on ties) and the largest value over all streams. Missing and
// unparseable values are not counted.
func ComputeBounds(data Dataset) DataBounds {
	streams := StreamCount(data)
	counts := make([]int, streams)
	var maxVal float64
	for _, r := range data.Rows {
		for s := range streams {
			v, ok := r.Datum(s).Value()
			if !ok {
				continue
			}
			counts[s]++
			if v > maxVal {
				maxVal = v
			}
		}
	}
	main, best := 0, 0
	for s, c := range counts {
		if c > best {
			main, best = s+1, c
		}
	}
	return DataBounds{Streams: streams, MainStream: main, MaxVal: maxVal}
}

// StreamMax returns the largest positive value of one 0-based stream.
func StreamMax(data Dataset, stream int) float64 {
	var m float64
	for _, r := range data.Rows {
		if v, ok := r.Datum(stream).Value(); ok && v > m {
			m = v
		}
	}
	return m
}

// IsPrimary reports whether the 0-based stream is the main stream.
func (b DataBounds) IsPrimary(stream int) bool {
	return b.MainStream == stream+1
}
