package confect

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"time"

	"github.com/zoobzio/sentinel"
)

// Binder materializes typed configuration from a flat property map. The map
// is snapshotted at construction and never mutated; a binder is safe for
// concurrent use across goroutines.
type Binder struct {
	properties map[string]string
	provider   Provider
	monitor    Monitor
	converters map[reflect.Type]ConverterFunc
	cache      *metadataCache
}

// Option configures a Binder.
type Option func(*Binder)

// WithMonitor replaces the default signal-emitting monitor.
func WithMonitor(m Monitor) Option {
	return func(b *Binder) { b.monitor = m }
}

// WithProvider replaces the default tag-driven metadata provider.
func WithProvider(p Provider) Option {
	return func(b *Binder) { b.provider = p }
}

// WithConverter registers a converter for an exact target type. Converters
// take precedence over every built-in coercion rule.
func WithConverter(t reflect.Type, fn ConverterFunc) Option {
	return func(b *Binder) { b.converters[t] = fn }
}

// New creates a Binder over a snapshot of properties. The map is copied;
// later mutation of the argument does not affect the binder. Keys are
// case-sensitive and matched exactly.
func New(properties map[string]string, opts ...Option) *Binder {
	b := &Binder{
		properties: maps.Clone(properties),
		provider:   TagProvider{},
		monitor:    SignalMonitor{},
		converters: builtinConverters(),
		cache:      newMetadataCache(),
	}
	if b.properties == nil {
		b.properties = make(map[string]string)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Properties returns a copy of the binder's property snapshot.
func (b *Binder) Properties() map[string]string {
	return maps.Clone(b.properties)
}

// Reset clears cached metadata so the next bind re-derives it.
// Primarily useful for test isolation.
func (b *Binder) Reset() {
	b.cache.reset()
}

// Build constructs a new T and populates it from the binder's properties.
// Binding never stops at the first misconfiguration: every resolution
// conflict, coercion failure, and setter error is collected and returned as
// one *BindError.
func Build[T any](ctx context.Context, b *Binder) (*T, error) {
	return BuildPrefixed[T](ctx, b, "")
}

// BuildPrefixed is Build with every property name qualified by prefix and a
// separating dot. An empty prefix contributes no separator.
func BuildPrefixed[T any](ctx context.Context, b *Binder, prefix string) (*T, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrInstantiation, t)
	}
	sentinel.Scan[T]()

	meta, err := b.metadata(ctx, t)
	if err != nil {
		return nil, err
	}

	instance, err := newInstance(t)
	if err != nil {
		return nil, err
	}

	if err := b.bind(ctx, instance, meta, normalizePrefix(prefix)); err != nil {
		return nil, err
	}
	return instance.Interface().(*T), nil
}

// Populate binds properties onto an existing instance, which must be a
// non-nil pointer to a struct. Defaulter is not invoked; the caller owns
// the supplied instance's state.
func (b *Binder) Populate(ctx context.Context, instance any, prefix string) error {
	if instance == nil {
		return fmt.Errorf("%w: instance is nil", ErrNilTarget)
	}
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: instance must be a non-nil pointer to a struct, got %T", ErrNilTarget, instance)
	}

	meta, err := b.metadata(ctx, rv.Elem().Type())
	if err != nil {
		return err
	}
	return b.bind(ctx, rv, meta, normalizePrefix(prefix))
}

// metadata fetches cached metadata and fails fast on structural errors,
// before any instance work begins.
func (b *Binder) metadata(ctx context.Context, t reflect.Type) (*Metadata, error) {
	meta, err := b.cache.get(ctx, t, b.provider, b.monitor)
	if err != nil {
		return nil, fmt.Errorf("deriving metadata for %s: %w", t, err)
	}
	if meta.Problems != nil && meta.Problems.HasErrors() {
		return nil, meta.Problems.Err()
	}
	return meta, nil
}

// newInstance constructs a zero value of t and applies its defaults. A
// panic out of SetDefaults is the instance's own initialization failing,
// so it surfaces immediately and is never aggregated.
func newInstance(t reflect.Type) (instance reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = reflect.Value{}
			err = fmt.Errorf("%w: creating instance of %s: %v", ErrInstantiation, t, r)
		}
	}()

	instance = reflect.New(t)
	if d, ok := instance.Interface().(Defaulter); ok {
		d.SetDefaults()
	}
	return instance, nil
}

// bind applies every attribute independently and aggregates the outcome.
func (b *Binder) bind(ctx context.Context, instance reflect.Value, meta *Metadata, prefix string) error {
	start := time.Now()
	emitBindStart(ctx, meta.Type.String(), prefix)

	problems := NewProblems(b.monitor)
	for _, attr := range meta.Attributes {
		b.bindAttribute(ctx, instance, attr, prefix, problems)
	}

	err := problems.Err()
	emitBindComplete(ctx, meta.Type.String(), prefix, time.Since(start), len(meta.Attributes), err)
	return err
}

// bindAttribute resolves, coerces, and applies one attribute. Every failure
// is recorded on problems; an attribute never aborts the surrounding bind.
func (b *Binder) bindAttribute(ctx context.Context, instance reflect.Value, attr AttributeMetadata, prefix string, problems *Problems) {
	key, raw, ok := b.resolveOperative(ctx, attr, prefix, problems)
	if !ok {
		return
	}

	value, ok := b.coerce(attr.Setter.Type(), raw)
	if !ok {
		problems.Errorf(ctx, ErrCoercion,
			"could not coerce value %q to %s for attribute %q (property %q) in [%s]",
			raw, attr.Setter.Type(), attr.Name, key, attr.Setter)
		return
	}

	if err := attr.Setter.Apply(instance, value); err != nil {
		problems.Errorf(ctx, fmt.Errorf("%w: %w", ErrApplication, err),
			"error invoking %s on %s: %s", attr.Setter, instance.Elem().Type(), err)
	}
}

// normalizePrefix appends the key separator to non-empty prefixes.
func normalizePrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + "."
}
