// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aamp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// NameResolver recovers a human-readable name from a key hash. The
// text codec uses it to render keys; a nil resolver renders every key
// as a 0x-prefixed hash literal. Implemented by names.Table.
type NameResolver interface {
	Name(hash uint32) (string, bool)
}

// WriteText serializes the archive to its YAML text form. Keys render
// through resolver where possible; unresolvable keys become 0x
// literals that [ParseText] maps back to the same hash.
func WriteText(pio *ParameterIO, resolver NameResolver) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendKV(root, "version", &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatUint(uint64(pio.Version), 10)})
	appendKV(root, "type", &yaml.Node{Kind: yaml.ScalarNode, Value: pio.Type})
	appendKV(root, "param_root", listNode(&pio.Root, resolver))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encoding archive text: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseText parses the YAML text form produced by [WriteText].
func ParseText(data []byte) (*ParameterIO, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing archive text: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("parsing archive text: not a single YAML document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing archive text: top level is not a mapping")
	}

	pio := NewParameterIO()
	seenRoot := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "version":
			v, err := strconv.ParseUint(value.Value, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("parsing version: %w", err)
			}
			pio.Version = uint32(v)
		case "type":
			pio.Type = value.Value
		case "param_root":
			list, err := parseListNode(value)
			if err != nil {
				return nil, err
			}
			pio.Root = *list
			seenRoot = true
		}
	}
	if !seenRoot {
		return nil, fmt.Errorf("parsing archive text: missing param_root")
	}
	return pio, nil
}

// keyString renders a key hash for the text form.
func keyString(hash uint32, resolver NameResolver) string {
	if resolver != nil {
		if name, ok := resolver.Name(hash); ok {
			return name
		}
	}
	return fmt.Sprintf("0x%08x", hash)
}

// parseKey maps a text-form key back to its hash: 0x literals parse
// directly, anything else is hashed.
func parseKey(s string) uint32 {
	if strings.HasPrefix(s, "0x") {
		if v, err := strconv.ParseUint(s[2:], 16, 32); err == nil {
			return uint32(v)
		}
	}
	return Hash(s)
}

func appendKV(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}

func listNode(l *List, resolver NameResolver) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if l.Objects.Len() > 0 {
		objects := &yaml.Node{Kind: yaml.MappingNode}
		for i := 0; i < l.Objects.Len(); i++ {
			key, obj := l.Objects.At(i)
			appendKV(objects, keyString(key, resolver), objectNode(obj, resolver))
		}
		appendKV(node, "objects", objects)
	}
	if l.Lists.Len() > 0 {
		lists := &yaml.Node{Kind: yaml.MappingNode}
		for i := 0; i < l.Lists.Len(); i++ {
			key, child := l.Lists.At(i)
			appendKV(lists, keyString(key, resolver), listNode(child, resolver))
		}
		appendKV(node, "lists", lists)
	}
	return node
}

func objectNode(obj *Object, resolver NameResolver) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	for i := 0; i < obj.Params.Len(); i++ {
		key, p := obj.Params.At(i)
		appendKV(node, keyString(key, resolver), paramNode(p))
	}
	return node
}

// paramNode encodes one parameter as a YAML scalar or flow sequence.
// Types YAML can resolve natively (bool, int, float, str) stay
// untagged; everything else carries a local tag naming its type.
func paramNode(p Parameter) *yaml.Node {
	switch p.Type() {
	case TypeBool:
		b, _ := p.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(b)}
	case TypeInt:
		v, _ := p.AsInt()
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatInt(int64(v), 10)}
	case TypeUInt:
		v, _ := p.AsUInt()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!u", Value: strconv.FormatUint(uint64(v), 10)}
	case TypeFloat:
		v, _ := p.AsFloat()
		return &yaml.Node{Kind: yaml.ScalarNode, Value: formatFloat(v)}
	case TypeStringRef:
		s, _ := p.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case TypeString32, TypeString64, TypeString256:
		s, _ := p.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!" + p.Type().String(), Value: s}
	default:
		vec, _ := p.AsVec()
		node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Tag: "!" + p.Type().String()}
		for _, v := range vec {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: formatFloat(v)})
		}
		return node
	}
}

func parseListNode(node *yaml.Node) (*List, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing archive text: list node is not a mapping (line %d)", node.Line)
	}
	list := &List{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "objects":
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("parsing archive text: objects is not a mapping (line %d)", value.Line)
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				obj, err := parseObjectNode(value.Content[j+1])
				if err != nil {
					return nil, err
				}
				list.Objects.Put(parseKey(value.Content[j].Value), obj)
			}
		case "lists":
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("parsing archive text: lists is not a mapping (line %d)", value.Line)
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				child, err := parseListNode(value.Content[j+1])
				if err != nil {
					return nil, err
				}
				list.Lists.Put(parseKey(value.Content[j].Value), child)
			}
		default:
			return nil, fmt.Errorf("parsing archive text: unexpected key %q (line %d)", key.Value, key.Line)
		}
	}
	return list, nil
}

func parseObjectNode(node *yaml.Node) (*Object, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing archive text: object node is not a mapping (line %d)", node.Line)
	}
	obj := &Object{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		p, err := parseParamNode(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		obj.Params.Put(parseKey(node.Content[i].Value), p)
	}
	return obj, nil
}

func parseParamNode(node *yaml.Node) (Parameter, error) {
	switch node.Tag {
	case "!!bool":
		v, err := strconv.ParseBool(node.Value)
		if err != nil {
			return Parameter{}, fmt.Errorf("parsing bool at line %d: %w", node.Line, err)
		}
		return Bool(v), nil
	case "!!int":
		v, err := strconv.ParseInt(node.Value, 0, 32)
		if err != nil {
			return Parameter{}, fmt.Errorf("parsing int at line %d: %w", node.Line, err)
		}
		return Int(int32(v)), nil
	case "!u":
		v, err := strconv.ParseUint(node.Value, 0, 32)
		if err != nil {
			return Parameter{}, fmt.Errorf("parsing uint at line %d: %w", node.Line, err)
		}
		return UInt(uint32(v)), nil
	case "!!float":
		v, err := strconv.ParseFloat(node.Value, 32)
		if err != nil {
			return Parameter{}, fmt.Errorf("parsing float at line %d: %w", node.Line, err)
		}
		return Float(float32(v)), nil
	case "!!str":
		return StringRef(node.Value), nil
	case "!str32":
		return String32(node.Value), nil
	case "!str64":
		return String64(node.Value), nil
	case "!str256":
		return String256(node.Value), nil
	case "!vec2", "!vec3", "!vec4", "!quat", "!color":
		typ, err := ParseType(node.Tag[1:])
		if err != nil {
			return Parameter{}, err
		}
		vec, err := parseFloatSeq(node, typ)
		if err != nil {
			return Parameter{}, err
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
		return Parameter{}, fmt.Errorf("parsing parameter at line %d: unknown tag %q", node.Line, node.Tag)
	}
}

// vecArity is the component count of each vector type.
func vecArity(t Type) int {
	switch t {
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	default:
		return 4
	}
}

func parseFloatSeq(node *yaml.Node, typ Type) ([]float32, error) {
	want := vecArity(typ)
	if node.Kind != yaml.SequenceNode || len(node.Content) != want {
		return nil, fmt.Errorf("parsing %s at line %d: expected %d-element sequence", typ, node.Line, want)
	}
	out := make([]float32, want)
	for i, item := range node.Content {
		v, err := strconv.ParseFloat(item.Value, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing %s component at line %d: %w", typ, item.Line, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}
