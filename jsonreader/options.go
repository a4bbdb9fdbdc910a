package jsonreader

// options holds the reader configuration enumerated in spec.md §6.
// All options default to their RFC 8259-strict behaviour.
type options struct {
	final         bool
	draining      bool
	trailingComma bool
	bigDecimal    bool
	cborDiag      bool
}

func defaultOptions() options {
	return options{
		final:    true,
		draining: true,
	}
}

// Option configures a Reader. Grounded on the functional-option idiom
// used for CBOR reader configuration in the corpus (ReaderOption /
// WithReaderConformanceMode).
type Option func(*options)

// WithFinal declares the source complete: once the source runs
// temporarily dry, pending number/token literal states are flushed
// instead of the reader suspending. This is the default.
func WithFinal() Option { return func(o *options) { o.final = true } }

// WithPartial is the opposite of WithFinal: a source running dry mid
// literal is treated as a tentative underrun, and HasNext reports
// false without declaring EOF so the caller can push more input and
// retry.
func WithPartial() Option { return func(o *options) { o.final = false } }

// WithDraining makes non-whitespace content after the root value a
// terminal error. This is the default.
func WithDraining() Option { return func(o *options) { o.draining = true } }

// WithNonDraining leaves the source positioned after the root value
// without erroring on whatever trailing content remains.
func WithNonDraining() Option { return func(o *options) { o.draining = false } }

// WithTrailingComma permits a single trailing ',' before ']' or '}'.
func WithTrailingComma() Option { return func(o *options) { o.trailingComma = true } }

// WithBigDecimal promotes a non-round-tripping float64 literal to an
// arbitrary-precision decimal (event.NumberBigDecimal) instead of
// accepting precision loss.
func WithBigDecimal() Option { return func(o *options) { o.bigDecimal = true } }

// WithCBORDiag enables the CBOR-diagnostic extensions: Tag(n) via
// n(value), h'...'/b'...' byte-string literals, undefined/NaN/
// Infinity/-Infinity, and number-shaped map keys.
func WithCBORDiag() Option { return func(o *options) { o.cborDiag = true } }
