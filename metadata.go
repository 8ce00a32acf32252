package confect

import (
	"context"
	"reflect"
)

// Setter applies one coerced value to a configuration instance. Setters are
// produced by a Provider and invoked by the binder; they carry no state of
// their own and are safe to share across binds.
type Setter interface {
	// Type returns the declared type of the setter's single argument. The
	// binder coerces raw property values to this type before Apply.
	Type() reflect.Type

	// Apply sets value on target, where target is a pointer to the
	// configuration struct. A panic during application must be converted
	// into an error, never propagated.
	Apply(target, value reflect.Value) error

	// String describes the setter for diagnostics.
	String() string
}

// AttributeMetadata describes one bindable member of a configuration type.
type AttributeMetadata struct {
	// Name identifies the attribute in diagnostics.
	Name string

	// PropertyName is the canonical external key, without prefix. Empty
	// means no canonical key exists; the attribute can then only be fed
	// by its deprecated keys.
	PropertyName string

	// DeprecatedNames lists legacy external keys in declared order.
	DeprecatedNames []string

	// Setter applies a coerced value to an instance.
	Setter Setter
}

// Metadata holds everything the binder needs to know about one
// configuration type. It is derived once per type per binder and shared by
// every subsequent bind.
type Metadata struct {
	// Type is the configuration struct type.
	Type reflect.Type

	// Attributes lists the bindable members.
	Attributes []AttributeMetadata

	// Problems holds structural diagnostics found during extraction, such
	// as duplicate property names. A bind of this type fails before any
	// instance work when an error-severity entry exists.
	Problems *Problems
}

// Provider derives binding metadata for a type. Structural problems are
// reported through the returned Metadata's Problems; a non-nil error means
// the derivation itself failed and may be retried by a later caller.
type Provider interface {
	Extract(ctx context.Context, t reflect.Type, monitor Monitor) (*Metadata, error)
}

// Defaulter lets a configuration type seed default values before binding.
// Build invokes it on freshly constructed instances. Populate does not,
// since the caller owns the supplied instance's state.
type Defaulter interface {
	SetDefaults()
}
