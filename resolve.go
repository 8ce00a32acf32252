package confect

import "context"

// resolveOperative determines the single property-map entry feeding one
// attribute. The canonical key wins when present; otherwise the first
// matching deprecated key is adopted. Every matching deprecated key records
// a warning naming the canonical replacement. A deprecated value
// disagreeing with the already-chosen operative value is a conflict: an
// error is recorded, the scan still completes so every conflict is
// reported, and the attribute is abandoned for this bind.
func (b *Binder) resolveOperative(ctx context.Context, attr AttributeMetadata, prefix string, problems *Problems) (string, string, bool) {
	if attr.PropertyName == "" {
		// Not externally configurable; no lookups at all.
		return "", "", false
	}

	operativeKey := prefix + attr.PropertyName
	operativeValue, found := b.properties[operativeKey]

	conflict := false
	for _, name := range attr.DeprecatedNames {
		fullKey := prefix + name
		value, ok := b.properties[fullKey]
		if !ok {
			continue
		}

		problems.Warnf(ctx, "configuration property %q is deprecated, use %q instead", fullKey, prefix+attr.PropertyName)

		switch {
		case !found:
			operativeKey, operativeValue, found = fullKey, value, true
		case value != operativeValue:
			problems.Errorf(ctx, ErrConflict,
				"value for property %q (=%s) conflicts with property %q (=%s)",
				fullKey, value, operativeKey, operativeValue)
			conflict = true
		}
	}

	if conflict || !found {
		return "", "", false
	}
	return operativeKey, operativeValue, true
}
