// Package wire serializes expression trees to a compact binary format
// so parsed expressions can be cached or handed to other tooling.
// Layout: MAGIC(4) | VERSION(2, little-endian) | CBOR body.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/prattle-dev/prattle/pkgs/ast"
)

const (
	// Magic is the file magic number "PRAT" (4 bytes)
	Magic = "PRAT"

	// Version is the format version (uint16, little-endian)
	Version uint16 = 0x0001
)

// node is the self-describing serialized form of an ast.Node
type node struct {
	Kind  string `cbor:"kind"`
	Name  string `cbor:"name,omitempty"`  // ident name or call callee
	Value int64  `cbor:"value,omitempty"` // number literal value
	Op    string `cbor:"op,omitempty"`    // operator display name
	Kids  []node `cbor:"kids,omitempty"`  // operands or call arguments
}

const (
	kindIdent  = "ident"
	kindNumber = "number"
	kindUnary  = "unary"
	kindBinary = "binary"
	kindCall   = "call"
)

var operatorByName = map[string]ast.Operator{}

func init() {
	for _, op := range []ast.Operator{
		ast.Add, ast.Subtract, ast.Multiply, ast.Divide, ast.Power, ast.Negate,
	} {
		operatorByName[op.String()] = op
	}
}

// Encode writes the tree to w
func Encode(w io.Writer, n ast.Node) error {
	if _, err := w.Write([]byte(Magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, Version); err != nil {
		return err
	}

	body, err := cbor.Marshal(toWire(n))
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// Decode reads a tree previously written by Encode
func Decode(r io.Reader) (ast.Node, error) {
	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(header) != Magic {
		return nil, fmt.Errorf("bad magic %q, want %q", header, Magic)
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("unsupported version 0x%04x", version)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var n node
	if err := cbor.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}
	return fromWire(n)
}

func toWire(n ast.Node) node {
	switch v := n.(type) {
	case *ast.Ident:
		return node{Kind: kindIdent, Name: v.Name}
	case *ast.NumberLit:
		return node{Kind: kindNumber, Value: v.Value}
	case *ast.UnaryExpr:
		return node{Kind: kindUnary, Op: v.Op.String(), Kids: []node{toWire(v.Operand)}}
	case *ast.BinaryExpr:
		return node{Kind: kindBinary, Op: v.Op.String(), Kids: []node{toWire(v.Left), toWire(v.Right)}}
	case *ast.CallExpr:
		kids := make([]node, len(v.Args))
		for i, arg := range v.Args {
			kids[i] = toWire(arg)
		}
		return node{Kind: kindCall, Name: v.Callee, Kids: kids}
	default:
		panic(fmt.Sprintf("wire: unknown node type %T", n))
	}
}

func fromWire(n node) (ast.Node, error) {
	switch n.Kind {
	case kindIdent:
		return &ast.Ident{Name: n.Name}, nil

	case kindNumber:
		return &ast.NumberLit{Value: n.Value}, nil

	case kindUnary:
		if len(n.Kids) != 1 {
			return nil, fmt.Errorf("unary node has %d operands", len(n.Kids))
		}
		op, ok := operatorByName[n.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", n.Op)
		}
		operand, err := fromWire(n.Kids[0])
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, Operand: operand}, nil

	case kindBinary:
		if len(n.Kids) != 2 {
			return nil, fmt.Errorf("binary node has %d operands", len(n.Kids))
		}
		op, ok := operatorByName[n.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", n.Op)
		}
		left, err := fromWire(n.Kids[0])
		if err != nil {
			return nil, err
		}
		right, err := fromWire(n.Kids[1])
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil

	case kindCall:
		args := make([]ast.Node, len(n.Kids))
		for i, kid := range n.Kids {
			arg, err := fromWire(kid)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &ast.CallExpr{Callee: n.Name, Args: args}, nil

	default:
		return nil, fmt.Errorf("unknown node kind %q", n.Kind)
	}
}
