package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meigma/gitindex/codec"
)

// Layout is a schema read from a definition file together with the byte
// order it is meant to be decoded with.
type Layout struct {
	Schema *Schema
	Endian codec.Endian
}

type layoutDef struct {
	Name   string     `yaml:"name"`
	Endian string     `yaml:"endian"`
	Fields []fieldDef `yaml:"fields"`
}

type fieldDef struct {
	Name   string    `yaml:"name"`
	Size   yaml.Node `yaml:"size"`
	Kind   string    `yaml:"kind"`
	Offset *int      `yaml:"offset"`
	Labels yaml.Node `yaml:"labels"`
}

// ParseYAML reads a schema definition:
//
//	name: header
//	endian: big
//	fields:
//	  - {name: signature, size: 4, kind: string}
//	  - {name: count, size: 4}
//	  - {name: flags, size: 2, kind: bit, labels: {0x8000: valid, 0x4000: extended}}
//	  - {name: stage, size: 1, kind: enum, labels: {0: normal, 1: base}}
//	  - {name: type, size: 1, kind: array, labels: [none, blob, tree]}
//	  - {name: path, size: pathLength, kind: string}
//
// A non-numeric size references an earlier field. Kind defaults to value.
// Kind names without an interpreter are kept and fail at decode time.
func ParseYAML(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var def layoutDef
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty definition", ErrInvalidSchema)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	order, err := codec.ParseEndian(def.Endian)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	fields := make([]Field, 0, len(def.Fields))
	for i, fd := range def.Fields {
		f, err := fd.field()
		if err != nil {
			return nil, fmt.Errorf("%w: field %d (%s): %w", ErrInvalidSchema, i, fd.Name, err)
		}
		fields = append(fields, f)
	}

	s, err := New(def.Name, fields...)
	if err != nil {
		return nil, err
	}
	return &Layout{Schema: s, Endian: order}, nil
}

func (fd fieldDef) field() (Field, error) {
	size, err := parseSize(&fd.Size)
	if err != nil {
		return Field{}, err
	}
	kind, err := parseKind(fd.Kind, &fd.Labels)
	if err != nil {
		return Field{}, err
	}
	f := Field{Name: fd.Name, Size: size, Kind: kind}
	if fd.Offset != nil {
		f.Offset = At(*fd.Offset)
	}
	return f, nil
}

func parseSize(n *yaml.Node) (Size, error) {
	if n.Kind == 0 {
		return Size{}, errors.New("size is required")
	}
	if n.Kind != yaml.ScalarNode {
		return Size{}, fmt.Errorf("line %d: size must be a number or a field name", n.Line)
	}
	if n.Tag == "!!int" {
		v, err := strconv.ParseInt(n.Value, 0, 0)
		if err != nil {
			return Size{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bytes(int(v)), nil
	}
	return Ref(n.Value), nil
}

func parseKind(name string, labels *yaml.Node) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "value", "uint", "int":
		return ValueKind{}, nil
	case "string", "text":
		return StringKind{}, nil
	case "ignore", "skip":
		return IgnoreKind{}, nil
	case "enum":
		pairs, err := labelPairs(labels)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(pairs))
		for _, p := range pairs {
			m[p[0]] = p[1]
		}
		return EnumHex(m)
	case "bit", "bits", "flags":
		pairs, err := labelPairs(labels)
		if err != nil {
			return nil, err
		}
		flags := make([]BitFlag, 0, len(pairs))
		for _, p := range pairs {
			mask, err := codec.ParseUint(p[0])
			if err != nil {
				return nil, err
			}
			flags = append(flags, BitFlag{Mask: mask, Label: p[1]})
		}
		return Bits(flags...), nil
	case "array":
		if labels.Kind != yaml.SequenceNode {
			return nil, errors.New("array labels must be a list")
		}
		var list []string
		if err := labels.Decode(&list); err != nil {
			return nil, err
		}
		return Array(list...), nil
	default:
		return unknownKind{name: name}, nil
	}
}

// labelPairs returns the key/label pairs of a mapping node in document order.
func labelPairs(n *yaml.Node) ([][2]string, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errors.New("labels must be a mapping")
	}
	pairs := make([][2]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, [2]string{n.Content[i].Value, n.Content[i+1].Value})
	}
	return pairs, nil
}
