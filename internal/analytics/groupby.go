package analytics

// GroupBy partitions records by an arbitrary key, preserving first-encounter
// key order and insertion order within each group.
func GroupBy[T any](items []T, key func(T) string) *Grouping[T] {
	g := &Grouping[T]{Groups: make(map[string][]T)}
	for _, item := range items {
		k := key(item)
		if _, ok := g.Groups[k]; !ok {
			g.Keys = append(g.Keys, k)
		}
		g.Groups[k] = append(g.Groups[k], item)
	}
	return g
}

// BucketByKey accumulates records into keyed count/total buckets, keys in
// first-encounter order.
func BucketByKey[T any](items []T, key func(T) string, amount func(T) float64) *BucketMap[T] {
	bm := &BucketMap[T]{Buckets: make(map[string]*RecordBucket[T])}
	for _, item := range items {
		k := key(item)
		bucket, ok := bm.Buckets[k]
		if !ok {
			bucket = &RecordBucket[T]{}
			bm.Buckets[k] = bucket
			bm.Keys = append(bm.Keys, k)
		}
		bucket.Count++
		bucket.Total += amount(item)
		bucket.Records = append(bucket.Records, item)
	}
	return bm
}
