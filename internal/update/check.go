package update

// Check accumulates the outcome of independent artifact checks so a
// cycle reports one combined failure instead of one message per
// artifact. Success is the identity; combining failures joins the
// labels with " and " and unions the retry keys, preserving order.
type Check struct {
	failed bool
	label  string
	keys   []string
}

// Success returns the passing check, the identity for And.
func Success() Check { return Check{} }

// Failure returns a failed check with a user-facing label (e.g.
// "Scala 2.7.2") and the properties keys to re-prompt.
func Failure(label string, keys ...string) Check {
	return Check{failed: true, label: label, keys: keys}
}

// And combines two checks.
func (c Check) And(other Check) Check {
	if !c.failed {
		return other
	}
	if !other.failed {
		return c
	}
	combined := Check{
		failed: true,
		label:  c.label + " and " + other.label,
		keys:   append([]string(nil), c.keys...),
	}
	for _, k := range other.keys {
		if !contains(combined.keys, k) {
			combined.keys = append(combined.keys, k)
		}
	}
	return combined
}

// Failed reports whether any combined check failed.
func (c Check) Failed() bool { return c.failed }

// Label is the combined user-facing failure label.
func (c Check) Label() string { return c.label }

// RetryKeys lists the properties keys whose values should be re-asked.
func (c Check) RetryKeys() []string { return c.keys }

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
