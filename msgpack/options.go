package msgpack

// options holds Writer configuration. Grounded on the same
// functional-option idiom as jsonreader.Option.
type options struct {
	sortedKeys bool
}

func defaultOptions() options { return options{} }

// Option configures a Writer.
type Option func(*options)

// WithSortedKeys buffers every map's key/value pairs and emits them in
// key-bytes order instead of arrival order, deferring the map header
// until the sorted body is known.
func WithSortedKeys() Option { return func(o *options) { o.sortedKeys = true } }
