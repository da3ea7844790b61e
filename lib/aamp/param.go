// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aamp

import (
	"fmt"
	"strings"
)

// Type identifies the concrete type of a [Parameter]. The values are
// format constants — they appear in the binary form and must not be
// reordered.
type Type uint8

const (
	TypeBool Type = iota
	TypeInt
	TypeUInt
	TypeFloat
	TypeString32
	TypeString64
	TypeString256
	TypeStringRef
	TypeVec2
	TypeVec3
	TypeVec4
	TypeQuat
	TypeColor
)

// String returns the lowercase name of the type, as used in YAML tags
// and error messages.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeUInt:
		return "uint"
	case TypeFloat:
		return "float"
	case TypeString32:
		return "str32"
	case TypeString64:
		return "str64"
	case TypeString256:
		return "str256"
	case TypeStringRef:
		return "str"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	case TypeQuat:
		return "quat"
	case TypeColor:
		return "color"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseType parses a type name as produced by [Type.String].
func ParseType(name string) (Type, error) {
	for t := TypeBool; t <= TypeColor; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("aamp: unknown parameter type %q", name)
}

// Parameter is one typed scalar value inside a parameter object. It
// is an immutable tagged union; construct one with the typed
// constructors ([Bool], [Int], [Vec3], ...) and read it back through
// the As* accessors. Parameters are comparable, so two parameters are
// == exactly when they have the same type and value.
type Parameter struct {
	typ Type
	b   bool
	n   uint64     // Int and UInt payload (Int stored as uint64 bit pattern of int64).
	f   [4]float32 // Float, vector, quat, and color payload.
	s   string     // All string variants.
}

// Bool returns a boolean parameter.
func Bool(v bool) Parameter { return Parameter{typ: TypeBool, b: v} }

// Int returns a signed 32-bit integer parameter. Index references
// (ChildIdx, BehaviorIdx, DemoAIActionIdx slots) are this type, with
// -1 meaning "no reference".
func Int(v int32) Parameter { return Parameter{typ: TypeInt, n: uint64(int64(v))} }

// UInt returns an unsigned 32-bit integer parameter.
func UInt(v uint32) Parameter { return Parameter{typ: TypeUInt, n: uint64(v)} }

// Float returns a 32-bit float parameter.
func Float(v float32) Parameter { return Parameter{typ: TypeFloat, f: [4]float32{v}} }

// String32 returns a fixed-capacity 32-byte string parameter.
// ClassName fields are this type.
func String32(v string) Parameter { return Parameter{typ: TypeString32, s: v} }

// String64 returns a fixed-capacity 64-byte string parameter.
func String64(v string) Parameter { return Parameter{typ: TypeString64, s: v} }

// String256 returns a fixed-capacity 256-byte string parameter.
func String256(v string) Parameter { return Parameter{typ: TypeString256, s: v} }

// StringRef returns a variable-length string parameter. Name and
// GroupName fields are this type.
func StringRef(v string) Parameter { return Parameter{typ: TypeStringRef, s: v} }

// Vec2 returns a two-component float vector parameter.
func Vec2(x, y float32) Parameter { return Parameter{typ: TypeVec2, f: [4]float32{x, y}} }

// Vec3 returns a three-component float vector parameter.
func Vec3(x, y, z float32) Parameter { return Parameter{typ: TypeVec3, f: [4]float32{x, y, z}} }

// Vec4 returns a four-component float vector parameter.
func Vec4(x, y, z, w float32) Parameter { return Parameter{typ: TypeVec4, f: [4]float32{x, y, z, w}} }

// Quat returns a quaternion parameter.
func Quat(a, b, c, d float32) Parameter { return Parameter{typ: TypeQuat, f: [4]float32{a, b, c, d}} }

// Color returns an RGBA color parameter.
func Color(r, g, b, a float32) Parameter { return Parameter{typ: TypeColor, f: [4]float32{r, g, b, a}} }

// Type returns the parameter's concrete type.
func (p Parameter) Type() Type { return p.typ }

// AsBool returns the boolean payload.
func (p Parameter) AsBool() (bool, error) {
	if p.typ != TypeBool {
		return false, fmt.Errorf("aamp: parameter is %s, not bool", p.typ)
	}
	return p.b, nil
}

// AsInt returns the signed integer payload. This is the accessor the
// consistency engine depends on: every embedded reference is an Int.
func (p Parameter) AsInt() (int32, error) {
	if p.typ != TypeInt {
		return 0, fmt.Errorf("aamp: parameter is %s, not int", p.typ)
	}
	return int32(int64(p.n)), nil
}

// AsUInt returns the unsigned integer payload.
func (p Parameter) AsUInt() (uint32, error) {
	if p.typ != TypeUInt {
		return 0, fmt.Errorf("aamp: parameter is %s, not uint", p.typ)
	}
	return uint32(p.n), nil
}

// AsFloat returns the float payload.
func (p Parameter) AsFloat() (float32, error) {
	if p.typ != TypeFloat {
		return 0, fmt.Errorf("aamp: parameter is %s, not float", p.typ)
	}
	return p.f[0], nil
}

// AsString returns the string payload of any string variant (str32,
// str64, str256, or str).
func (p Parameter) AsString() (string, error) {
	switch p.typ {
	case TypeString32, TypeString64, TypeString256, TypeStringRef:
		return p.s, nil
	}
	return "", fmt.Errorf("aamp: parameter is %s, not a string", p.typ)
}

// AsVec returns the float components of a vector, quaternion, or
// color parameter, in stored order.
func (p Parameter) AsVec() ([]float32, error) {
	switch p.typ {
	case TypeVec2:
		return p.f[:2], nil
	case TypeVec3:
		return p.f[:3], nil
	case TypeVec4, TypeQuat, TypeColor:
		return p.f[:4], nil
	}
	return nil, fmt.Errorf("aamp: parameter is %s, not a vector", p.typ)
}

// IsString reports whether the parameter is any string variant.
func (p Parameter) IsString() bool {
	switch p.typ {
	case TypeString32, TypeString64, TypeString256, TypeStringRef:
		return true
	}
	return false
}

// String renders the parameter for display and debugging. Not a
// serialized form; the codecs have their own encodings.
func (p Parameter) String() string {
	switch p.typ {
	case TypeBool:
		return fmt.Sprintf("%t", p.b)
	case TypeInt:
		return fmt.Sprintf("%d", int32(int64(p.n)))
	case TypeUInt:
		return fmt.Sprintf("%d", uint32(p.n))
	case TypeFloat:
		return formatFloat(p.f[0])
	case TypeString32, TypeString64, TypeString256, TypeStringRef:
		return p.s
	default:
		vec, _ := p.AsVec()
		parts := make([]string, len(vec))
		for i, v := range vec {
			parts[i] = formatFloat(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
}

// formatFloat renders a float32 with a decimal point so it reparses
// as a float rather than an int.
func formatFloat(v float32) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
