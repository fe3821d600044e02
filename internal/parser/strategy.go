package parser

// strategy is one named attempt in an ordered extraction chain.
type strategy[T any] struct {
	name  string
	apply func(text string) (T, bool)
}

// firstMatch runs the chain in order and returns the first successful result
// along with the name of the strategy that produced it.
func firstMatch[T any](text string, chain []strategy[T]) (T, string, bool) {
	for _, s := range chain {
		if v, ok := s.apply(text); ok {
			return v, s.name, true
		}
	}
	var zero T
	return zero, "", false
}
