package params

import "sort"

// Changed reports whether any key differs between prev and next. A key present
// on only one side counts as a change, so both sides are walked.
func Changed(prev, next Mapping) bool {
	for k, v := range next {
		if ov, ok := prev[k]; !ok || ov != v {
			return true
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			return true
		}
	}
	return false
}

// ChangedKeys lists the keys whose value or presence differs, sorted.
func ChangedKeys(prev, next Mapping) []string {
	var keys []string
	for k, v := range next {
		if ov, ok := prev[k]; !ok || ov != v {
			keys = append(keys, k)
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
