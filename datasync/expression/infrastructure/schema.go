package expression

import (
	"encoding"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/ettle/strcase"
)

// FieldMapping links a member path of the element type to its wire name.
type FieldMapping struct {
	// Path is the dotted Go member path, e.g. "Address.City".
	Path string
	// WireName is the "/"-separated service name, e.g. "address/city".
	WireName string
}

// Schema is the field map of one element type. It is filled at construction
// and read-only afterwards, so it can be shared by every query over the type.
type Schema struct {
	typeName string
	open     bool
	byPath   map[string]FieldMapping
	byWire   map[string]FieldMapping
}

func NewSchema(typeName string) *Schema {
	return &Schema{
		typeName: typeName,
		byPath:   make(map[string]FieldMapping),
		byWire:   make(map[string]FieldMapping),
	}
}

// OpenSchema resolves every path, registered or not. It serves untyped
// elements such as map[string]any.
func OpenSchema(typeName string) *Schema {
	s := NewSchema(typeName)
	s.open = true
	return s
}

// Register maps path to wireName.
func (s *Schema) Register(path, wireName string) *Schema {
	mapping := FieldMapping{Path: path, WireName: wireName}
	s.byPath[path] = mapping
	s.byWire[wireName] = mapping
	return s
}

func (s *Schema) TypeName() string {
	return s.typeName
}

func (s *Schema) IsOpen() bool {
	return s.open
}

// Resolve accepts the Go path or the wire name.
func (s *Schema) Resolve(path string) (FieldMapping, error) {
	if mapping, ok := s.byPath[path]; ok {
		return mapping, nil
	}
	if mapping, ok := s.byWire[path]; ok {
		return mapping, nil
	}
	if s.open && path != "" {
		return FieldMapping{Path: path, WireName: strings.ReplaceAll(path, ".", "/")}, nil
	}
	return FieldMapping{}, unknownField(path, s.typeName)
}

// Fields lists the registered mappings ordered by path.
func (s *Schema) Fields() []FieldMapping {
	fields := make([]FieldMapping, 0, len(s.byPath))
	for _, mapping := range s.byPath {
		fields = append(fields, mapping)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Path < fields[j].Path })
	return fields
}

// SchemaFor derives the field map of T from its JSON encoding: the json tag
// name when present, otherwise the member name in camelCase. Nested structs
// contribute "/"-joined wire names; embedded structs are flattened.
func SchemaFor[T any]() *Schema {
	return SchemaOf(reflect.TypeFor[T]())
}

func SchemaOf(t reflect.Type) *Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Map && t.Key().Kind() == reflect.String {
		return OpenSchema(t.String())
	}
	s := NewSchema(t.Name())
	if t.Kind() == reflect.Struct {
		s.collect(t, "", "", map[reflect.Type]int{})
	}
	return s
}

// maxTypeDepth bounds how many times one struct type may appear on a member
// path, so a self-referential type is expanded a single level.
const maxTypeDepth = 2

func (s *Schema) collect(t reflect.Type, pathPrefix, wirePrefix string, seen map[reflect.Type]int) {
	seen[t]++
	defer func() { seen[t]-- }()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, skip := jsonName(f)
		if skip {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if f.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			if seen[ft] < maxTypeDepth {
				s.collect(ft, pathPrefix, wirePrefix, seen)
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = strcase.ToCamel(f.Name)
		}
		nested := isNestedObject(ft)
		if nested && seen[ft] >= maxTypeDepth {
			continue
		}
		path := joinPath(pathPrefix, f.Name, ".")
		wire := joinPath(wirePrefix, name, "/")
		s.Register(path, wire)
		if nested {
			s.collect(ft, path, wire, seen)
		}
	}
}

func jsonName(f reflect.StructField) (name string, skip bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	if tag == "-" {
		return "", true
	}
	name, _, _ = strings.Cut(tag, ",")
	return name, false
}

var (
	timeType          = reflect.TypeFor[time.Time]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func isNestedObject(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}
	pt := reflect.PointerTo(t)
	for _, iface := range []reflect.Type{jsonMarshalerType, textMarshalerType} {
		if t.Implements(iface) || pt.Implements(iface) {
			return false
		}
	}
	return true
}

func joinPath(prefix, name, sep string) string {
	if prefix == "" {
		return name
	}
	return prefix + sep + name
}
