package actions

// Attributes is the bag of named values an action resolves its method
// parameters from: user input, route parameters and previously resolved
// instances.
type Attributes map[string]any

// Get returns the value stored under key. A key holding nil is present.
func (a Attributes) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Has reports whether key is present, even when it holds nil.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Set stores value under key.
func (a Attributes) Set(key string, value any) {
	a[key] = value
}

// Merge returns a new bag holding a's entries overlaid with others in order;
// later bags win on equal keys.
func (a Attributes) Merge(others ...Attributes) Attributes {
	size := len(a)
	for _, o := range others {
		size += len(o)
	}
	out := make(Attributes, size)
	for k, v := range a {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// Clone returns a shallow copy.
func (a Attributes) Clone() Attributes {
	return a.Merge()
}
