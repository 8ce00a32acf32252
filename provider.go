package confect

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

// Struct tags recognized by TagProvider.
const (
	// TagProperty names the canonical property key for a field.
	TagProperty = "prop"

	// TagDeprecated lists comma-separated legacy property keys, in order.
	TagDeprecated = "deprecated"
)

func init() {
	// Register binding tags so sentinel scans capture them.
	sentinel.Tag(TagProperty)
	sentinel.Tag(TagDeprecated)
}

// TagProvider derives attributes from prop and deprecated struct tags. It
// is the default Provider for binders created with New.
//
// For a tagged field Name, a well-formed SetName method on the pointer
// receiver becomes the attribute's setter; the method must take exactly one
// argument and return nothing or error. Without such a method the field is
// assigned directly. A SetName method with any other shape is a structural
// error.
type TagProvider struct{}

func (TagProvider) Extract(ctx context.Context, t reflect.Type, monitor Monitor) (*Metadata, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrStructural, t)
	}

	spec := lookupType(t)
	problems := NewProblems(monitor)
	meta := &Metadata{Type: t, Problems: problems}

	seen := make(map[string]string) // canonical property name -> attribute name
	for _, field := range spec.Fields {
		prop, hasProp := field.Tags[TagProperty]
		deprecated := field.Tags[TagDeprecated]
		if !hasProp && deprecated == "" {
			continue
		}

		attr := AttributeMetadata{
			Name:            field.Name,
			PropertyName:    prop,
			DeprecatedNames: splitDeprecated(deprecated),
		}

		if prop != "" {
			if prior, dup := seen[prop]; dup {
				problems.Errorf(ctx, ErrStructural,
					"property %q on %s is declared by both attribute %q and attribute %q",
					prop, t, prior, field.Name)
				continue
			}
			seen[prop] = field.Name
		}

		setter, err := setterFor(t, field.Name)
		if err != nil {
			problems.Errorf(ctx, ErrStructural, "%s", err)
			continue
		}
		attr.Setter = setter
		meta.Attributes = append(meta.Attributes, attr)
	}

	return meta, nil
}

// splitDeprecated parses the comma-separated deprecated tag value.
func splitDeprecated(tag string) []string {
	if tag == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(tag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// lookupType returns sentinel metadata for t, scanning manually when the
// type has not been registered.
func lookupType(t reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(t.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    t.Name(),
		PackageName: t.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, t.NumField()),
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		spec.Fields = append(spec.Fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        bindingTags(sf.Tag),
		})
	}
	return spec
}

// bindingTags extracts the binding tags from a raw struct tag.
func bindingTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{TagProperty, TagDeprecated} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

var errorType = reflect.TypeFor[error]()

// setterFor picks the setter for a field: a well-formed Set<Name> method on
// the pointer receiver wins over direct field assignment.
func setterFor(owner reflect.Type, fieldName string) (Setter, error) {
	method, ok := reflect.PointerTo(owner).MethodByName("Set" + fieldName)
	if ok {
		mt := method.Type
		if mt.NumIn() != 2 || mt.NumOut() > 1 || (mt.NumOut() == 1 && mt.Out(0) != errorType) {
			return nil, fmt.Errorf("method %s.%s must take exactly one argument and return nothing or error", owner, method.Name)
		}
		return methodSetter{owner: owner, method: method, arg: mt.In(1)}, nil
	}

	field, ok := owner.FieldByName(fieldName)
	if !ok {
		return nil, fmt.Errorf("%s has no field %q", owner, fieldName)
	}
	return fieldSetter{owner: owner, field: field}, nil
}

// fieldSetter writes directly to a struct field.
type fieldSetter struct {
	owner reflect.Type
	field reflect.StructField
}

func (s fieldSetter) Type() reflect.Type { return s.field.Type }

func (s fieldSetter) Apply(target, value reflect.Value) (err error) {
	defer recoverApply(&err)
	target.Elem().FieldByIndex(s.field.Index).Set(value)
	return nil
}

func (s fieldSetter) String() string {
	return fmt.Sprintf("field %s.%s", s.owner, s.field.Name)
}

// methodSetter invokes a Set<Field> method on the instance pointer.
type methodSetter struct {
	owner  reflect.Type
	method reflect.Method
	arg    reflect.Type
}

func (s methodSetter) Type() reflect.Type { return s.arg }

func (s methodSetter) Apply(target, value reflect.Value) (err error) {
	defer recoverApply(&err)
	out := target.Method(s.method.Index).Call([]reflect.Value{value})
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

func (s methodSetter) String() string {
	return fmt.Sprintf("method %s.%s(%s)", s.owner, s.method.Name, s.arg)
}

// recoverApply converts a panic during setter application into an error.
func recoverApply(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%v", r)
	}
}
