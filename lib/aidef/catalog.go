// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aidef

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/aiprog-tools/aiprog/lib/aamp"
)

//go:embed data/aidef.jsonc
var bundledCatalog []byte

// ClassDef describes one class a record can be seeded from.
type ClassDef struct {
	// Name is the catalog class name, stored in Def.ClassName.
	Name string `json:"class"`

	// Children lists the child slot names declared by the class.
	// Only AI (and occasionally Action) classes declare children;
	// each becomes a -1 slot in the seeded ChildIdx object.
	Children []string `json:"children,omitempty"`

	// Params lists the default instance parameters, seeded into the
	// SInst object.
	Params []ParamDef `json:"params,omitempty"`
}

// ParamDef is one default-typed instance parameter of a class.
type ParamDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// Default is the JSON-shaped default value: bool, number, string,
	// or array of numbers depending on Type.
	Default any `json:"default"`
}

// Catalog holds the per-segment class definitions. Read-only after
// construction.
type Catalog struct {
	segments map[string][]ClassDef
	byName   map[string]map[string]*ClassDef
}

// NewCatalog parses the bundled class-definition table.
func NewCatalog() (*Catalog, error) {
	return parseCatalog(bundledCatalog, "bundled catalog")
}

// LoadCatalog parses a class-definition table from a JSONC file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return parseCatalog(data, path)
}

func parseCatalog(data []byte, source string) (*Catalog, error) {
	var raw map[string][]ClassDef
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	c := &Catalog{
		segments: raw,
		byName:   make(map[string]map[string]*ClassDef, len(raw)),
	}
	for segment, defs := range raw {
		index := make(map[string]*ClassDef, len(defs))
		for i := range defs {
			def := &defs[i]
			if def.Name == "" {
				return nil, fmt.Errorf("parsing %s: %s class with empty name", source, segment)
			}
			if _, dup := index[def.Name]; dup {
				return nil, fmt.Errorf("parsing %s: duplicate %s class %q", source, segment, def.Name)
			}
			index[def.Name] = def
		}
		c.byName[segment] = index
	}
	return c, nil
}

// Classes returns the class definitions of a segment, in catalog
// order. The slice is shared; callers must not modify it.
func (c *Catalog) Classes(segment string) []ClassDef {
	return c.segments[segment]
}

// Class returns the definition of a class within a segment.
func (c *Catalog) Class(segment, class string) (*ClassDef, bool) {
	def, ok := c.byName[segment][class]
	return def, ok
}

// HasChildren reports whether a class declares child slots. Unknown
// classes report false: a record of a class the catalog doesn't know
// is allowed to lack a ChildIdx object.
func (c *Catalog) HasChildren(segment, class string) bool {
	def, ok := c.Class(segment, class)
	return ok && len(def.Children) > 0
}

// BlankRecord seeds a new record of the given class: a Def object
// with populated ClassName (plus empty Name and GroupName for AI and
// Action records), a ChildIdx object with one -1 slot per declared
// child, and an SInst object with the declared parameter defaults.
func (c *Catalog) BlankRecord(segment, class string) (*aamp.List, error) {
	def, ok := c.Class(segment, class)
	if !ok {
		return nil, fmt.Errorf("aidef: no %s class %q in catalog", segment, class)
	}

	record := &aamp.List{}

	defObj := &aamp.Object{}
	if segment == "AI" || segment == "Action" {
		defObj.Params.Put(aamp.Hash("Name"), aamp.StringRef(""))
	}
	defObj.Params.Put(aamp.Hash("ClassName"), aamp.String32(def.Name))
	if segment == "AI" || segment == "Action" {
		defObj.Params.Put(aamp.Hash("GroupName"), aamp.StringRef(""))
	}
	record.Objects.Put(aamp.Hash("Def"), defObj)

	if len(def.Children) > 0 {
		childIdx := &aamp.Object{}
		for _, child := range def.Children {
			childIdx.Params.Put(aamp.Hash(child), aamp.Int(-1))
		}
		record.Objects.Put(aamp.Hash("ChildIdx"), childIdx)
	}

	if len(def.Params) > 0 {
		sinst := &aamp.Object{}
		for _, param := range def.Params {
			p, err := defaultParameter(param)
			if err != nil {
				return nil, fmt.Errorf("aidef: %s class %q: %w", segment, class, err)
			}
			sinst.Params.Put(aamp.Hash(param.Name), p)
		}
		record.Objects.Put(aamp.Hash("SInst"), sinst)
	}

	return record, nil
}

// defaultParameter converts a JSON-shaped default into a typed
// parameter.
func defaultParameter(def ParamDef) (aamp.Parameter, error) {
	typ, err := aamp.ParseType(def.Type)
	if err != nil {
		return aamp.Parameter{}, fmt.Errorf("parameter %q: %w", def.Name, err)
	}
	switch typ {
	case aamp.TypeBool:
		v, ok := def.Default.(bool)
		if !ok {
			return aamp.Parameter{}, fmt.Errorf("parameter %q: bool default is %T", def.Name, def.Default)
		}
		return aamp.Bool(v), nil
	case aamp.TypeInt:
		v, err := defaultNumber(def)
		if err != nil {
			return aamp.Parameter{}, err
		}
		return aamp.Int(int32(v)), nil
	case aamp.TypeUInt:
		v, err := defaultNumber(def)
		if err != nil {
			return aamp.Parameter{}, err
		}
		return aamp.UInt(uint32(v)), nil
	case aamp.TypeFloat:
		v, err := defaultNumber(def)
		if err != nil {
			return aamp.Parameter{}, err
		}
		return aamp.Float(float32(v)), nil
	case aamp.TypeString32:
		return stringDefault(def, aamp.String32)
	case aamp.TypeString64:
		return stringDefault(def, aamp.String64)
	case aamp.TypeString256:
		return stringDefault(def, aamp.String256)
	case aamp.TypeStringRef:
		return stringDefault(def, aamp.StringRef)
	default:
		comps, err := vectorDefault(def, typ)
		if err != nil {
			return aamp.Parameter{}, err
		}
		switch typ {
		case aamp.TypeVec2:
			return aamp.Vec2(comps[0], comps[1]), nil
		case aamp.TypeVec3:
			return aamp.Vec3(comps[0], comps[1], comps[2]), nil
		case aamp.TypeVec4:
			return aamp.Vec4(comps[0], comps[1], comps[2], comps[3]), nil
		case aamp.TypeQuat:
			return aamp.Quat(comps[0], comps[1], comps[2], comps[3]), nil
		default:
			return aamp.Color(comps[0], comps[1], comps[2], comps[3]), nil
		}
	}
}

func defaultNumber(def ParamDef) (float64, error) {
	v, ok := def.Default.(float64)
	if !ok {
		return 0, fmt.Errorf("parameter %q: numeric default is %T", def.Name, def.Default)
	}
	return v, nil
}

func stringDefault(def ParamDef, make func(string) aamp.Parameter) (aamp.Parameter, error) {
	v, ok := def.Default.(string)
	if !ok {
		return aamp.Parameter{}, fmt.Errorf("parameter %q: string default is %T", def.Name, def.Default)
	}
	return make(v), nil
}

func vectorDefault(def ParamDef, typ aamp.Type) ([]float32, error) {
	raw, ok := def.Default.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q: vector default is %T", def.Name, def.Default)
	}
	want := 4
	switch typ {
	case aamp.TypeVec2:
		want = 2
	case aamp.TypeVec3:
		want = 3
	}
	if len(raw) != want {
		return nil, fmt.Errorf("parameter %q: %s default has %d components, want %d", def.Name, typ, len(raw), want)
	}
	out := make([]float32, want)
	for i, item := range raw {
		v, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("parameter %q: vector component is %T", def.Name, item)
		}
		out[i] = float32(v)
	}
	return out, nil
}
