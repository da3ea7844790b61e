// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aamp

import (
	"fmt"
	"math"

	"github.com/aiprog-tools/aiprog/lib/codec"
)

// Binary form wire types. Ordered maps flatten to parallel key and
// value arrays so entry order survives CBOR's sorted-map encoding.

type binParam struct {
	Type  uint8 `cbor:"t"`
	Value any   `cbor:"v"`
}

type binObject struct {
	Keys   []uint32   `cbor:"k,omitempty"`
	Params []binParam `cbor:"p,omitempty"`
}

type binList struct {
	ObjectKeys []uint32    `cbor:"ok,omitempty"`
	Objects    []binObject `cbor:"o,omitempty"`
	ListKeys   []uint32    `cbor:"lk,omitempty"`
	Lists      []binList   `cbor:"l,omitempty"`
}

type binRoot struct {
	Version uint32  `cbor:"version"`
	Type    string  `cbor:"type"`
	Root    binList `cbor:"root"`
}

// WriteBinary serializes the archive to its binary (CBOR) form.
func WriteBinary(pio *ParameterIO) ([]byte, error) {
	root := binRoot{
		Version: pio.Version,
		Type:    pio.Type,
		Root:    flattenList(&pio.Root),
	}
	data, err := codec.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encoding binary archive: %w", err)
	}
	return data, nil
}

// ParseBinary parses the binary form produced by [WriteBinary].
func ParseBinary(data []byte) (*ParameterIO, error) {
	var root binRoot
	if err := codec.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding binary archive: %w", err)
	}
	pio := &ParameterIO{Version: root.Version, Type: root.Type}
	list, err := unflattenList(&root.Root)
	if err != nil {
		return nil, err
	}
	pio.Root = *list
	return pio, nil
}

func flattenList(l *List) binList {
	var out binList
	for i := 0; i < l.Objects.Len(); i++ {
		key, obj := l.Objects.At(i)
		out.ObjectKeys = append(out.ObjectKeys, key)
		out.Objects = append(out.Objects, flattenObject(obj))
	}
	for i := 0; i < l.Lists.Len(); i++ {
		key, child := l.Lists.At(i)
		out.ListKeys = append(out.ListKeys, key)
		out.Lists = append(out.Lists, flattenList(child))
	}
	return out
}

func flattenObject(obj *Object) binObject {
	var out binObject
	for i := 0; i < obj.Params.Len(); i++ {
		key, p := obj.Params.At(i)
		out.Keys = append(out.Keys, key)
		out.Params = append(out.Params, flattenParam(p))
	}
	return out
}

func flattenParam(p Parameter) binParam {
	out := binParam{Type: uint8(p.Type())}
	switch p.Type() {
	case TypeBool:
		v, _ := p.AsBool()
		out.Value = v
	case TypeInt:
		v, _ := p.AsInt()
		out.Value = int64(v)
	case TypeUInt:
		v, _ := p.AsUInt()
		out.Value = uint64(v)
	case TypeFloat:
		v, _ := p.AsFloat()
		out.Value = float64(v)
	case TypeString32, TypeString64, TypeString256, TypeStringRef:
		v, _ := p.AsString()
		out.Value = v
	default:
		vec, _ := p.AsVec()
		comps := make([]any, len(vec))
		for i, v := range vec {
			comps[i] = float64(v)
		}
		out.Value = comps
	}
	return out
}

func unflattenList(l *binList) (*List, error) {
	if len(l.ObjectKeys) != len(l.Objects) || len(l.ListKeys) != len(l.Lists) {
		return nil, fmt.Errorf("decoding binary archive: key/value arity mismatch")
	}
	out := &List{}
	for i, key := range l.ObjectKeys {
		obj, err := unflattenObject(&l.Objects[i])
		if err != nil {
			return nil, err
		}
		out.Objects.Put(key, obj)
	}
	for i, key := range l.ListKeys {
		child, err := unflattenList(&l.Lists[i])
		if err != nil {
			return nil, err
		}
		out.Lists.Put(key, child)
	}
	return out, nil
}

func unflattenObject(obj *binObject) (*Object, error) {
	if len(obj.Keys) != len(obj.Params) {
		return nil, fmt.Errorf("decoding binary archive: key/value arity mismatch")
	}
	out := &Object{}
	for i, key := range obj.Keys {
		p, err := unflattenParam(obj.Params[i])
		if err != nil {
			return nil, fmt.Errorf("decoding parameter 0x%08x: %w", key, err)
		}
		out.Params.Put(key, p)
	}
	return out, nil
}

func unflattenParam(p binParam) (Parameter, error) {
	typ := Type(p.Type)
	switch typ {
	case TypeBool:
		v, ok := p.Value.(bool)
		if !ok {
			return Parameter{}, fmt.Errorf("bool parameter carries %T", p.Value)
		}
		return Bool(v), nil
	case TypeInt:
		v, err := asInt64(p.Value)
		if err != nil {
			return Parameter{}, err
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return Parameter{}, fmt.Errorf("int parameter %d out of 32-bit range", v)
		}
		return Int(int32(v)), nil
	case TypeUInt:
		v, err := asInt64(p.Value)
		if err != nil {
			return Parameter{}, err
		}
		if v < 0 || v > math.MaxUint32 {
			return Parameter{}, fmt.Errorf("uint parameter %d out of 32-bit range", v)
		}
		return UInt(uint32(v)), nil
	case TypeFloat:
		v, err := asFloat64(p.Value)
		if err != nil {
			return Parameter{}, err
		}
		return Float(float32(v)), nil
	case TypeString32, TypeString64, TypeString256, TypeStringRef:
		s, ok := p.Value.(string)
		if !ok {
			return Parameter{}, fmt.Errorf("string parameter carries %T", p.Value)
		}
		switch typ {
		case TypeString32:
			return String32(s), nil
		case TypeString64:
			return String64(s), nil
		case TypeString256:
			return String256(s), nil
		default:
			return StringRef(s), nil
		}
	case TypeVec2, TypeVec3, TypeVec4, TypeQuat, TypeColor:
		raw, ok := p.Value.([]any)
		if !ok || len(raw) != vecArity(typ) {
			return Parameter{}, fmt.Errorf("%s parameter carries %T", typ, p.Value)
		}
		vec := make([]float32, len(raw))
		for i, item := range raw {
			v, err := asFloat64(item)
			if err != nil {
				return Parameter{}, err
			}
			vec[i] = float32(v)
		}
		switch typ {
		case TypeVec2:
			return Vec2(vec[0], vec[1]), nil
		case TypeVec3:
			return Vec3(vec[0], vec[1], vec[2]), nil
		case TypeVec4:
			return Vec4(vec[0], vec[1], vec[2], vec[3]), nil
		case TypeQuat:
			return Quat(vec[0], vec[1], vec[2], vec[3]), nil
		default:
			return Color(vec[0], vec[1], vec[2], vec[3]), nil
		}
	default:
		return Parameter{}, fmt.Errorf("unknown parameter type tag %d", p.Type)
	}
}

// asInt64 widens the integer shapes the CBOR decoder produces for
// any-typed targets.
func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer parameter %d overflows int64", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("integer parameter carries %T", v)
	}
}

// asFloat64 accepts the float and integer shapes the CBOR decoder
// produces; deterministic encoding stores whole floats as integers.
func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("float parameter carries %T", v)
	}
}
