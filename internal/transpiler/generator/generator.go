package generator

import (
	"fmt"
	"strconv"
	"strings"

	"martianoff/tsbind/internal/binding"
	"martianoff/tsbind/internal/transpiler"
)

const indentUnit = "    "

type rustPrinter struct {
}

// NewRustPrinter creates a new instance of Printer that renders Rust
// wasm_bindgen extern blocks.
func NewRustPrinter() transpiler.Printer {
	return &rustPrinter{}
}

// Print implements the Printer interface.
func (p *rustPrinter) Print(file *binding.File) (string, error) {
	w := &writer{}
	if err := w.nodes(file.Nodes); err != nil {
		return "", fmt.Errorf("printing %s: %w", file.Unit, err)
	}
	return w.sb.String(), nil
}

type writer struct {
	sb      strings.Builder
	depth   int
	prevUse bool
}

func (w *writer) line(format string, args ...any) {
	if format != "" {
		w.sb.WriteString(strings.Repeat(indentUnit, w.depth))
		fmt.Fprintf(&w.sb, format, args...)
	}
	w.sb.WriteByte('\n')
}

func (w *writer) nodes(nodes []binding.Node) error {
	for i, n := range nodes {
		_, isUse := n.(*binding.Use)
		if i > 0 && !(isUse && w.prevUse) {
			w.line("")
		}
		switch nn := n.(type) {
		case *binding.Use:
			w.line("%s", Use(nn))
		case *binding.ExternBlock:
			if err := w.block(nn); err != nil {
				return err
			}
		case *binding.Module:
			w.line("pub mod %s {", nn.Name)
			w.depth++
			w.prevUse = false
			if err := w.nodes(nn.Nodes); err != nil {
				return err
			}
			w.depth--
			w.line("}")
		default:
			return fmt.Errorf("unexpected node %T", n)
		}
		w.prevUse = isUse
	}
	return nil
}

func (w *writer) block(b *binding.ExternBlock) error {
	w.line("#[wasm_bindgen]")
	w.line(`extern "C" {`)
	w.depth++
	for _, it := range b.Items {
		if attr := Attribute(it); attr != "" {
			w.line("%s", attr)
		}
		switch item := it.(type) {
		case *binding.OpaqueType:
			w.line("pub type %s;", item.Name)
		case *binding.ExternFunction:
			w.line("%s;", Signature(item))
		case *binding.ExternStatic:
			w.line("pub static %s: %s;", item.Name, Type(item.Type))
		default:
			return fmt.Errorf("unexpected item %T", it)
		}
	}
	w.depth--
	w.line("}")
	return nil
}

// Use renders one use statement.
func Use(u *binding.Use) string {
	var sb strings.Builder
	if u.Pub {
		sb.WriteString("pub ")
	}
	sb.WriteString("use ")
	if u.Absolute {
		sb.WriteString("::")
	}
	sb.WriteString(strings.Join(u.Path, "::"))
	switch {
	case u.Glob:
		sb.WriteString("::*")
	case len(u.Leaves) == 1:
		sb.WriteString("::")
		sb.WriteString(leaf(u.Leaves[0]))
	default:
		parts := make([]string, len(u.Leaves))
		for i, l := range u.Leaves {
			parts[i] = leaf(l)
		}
		sb.WriteString("::{")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("}")
	}
	sb.WriteString(";")
	return sb.String()
}

func leaf(l binding.UseLeaf) string {
	if l.Rename == "" {
		return l.Name
	}
	return l.Name + " as " + l.Rename
}

// Attribute renders the merged binding attribute of an item, or "" when
// the item needs none.
func Attribute(it binding.Item) string {
	a := it.ItemAttrs()
	var parts []string
	if len(a.Namespace) > 0 {
		ns := make([]string, len(a.Namespace))
		for i, seg := range a.Namespace {
			ns[i] = strconv.Quote(seg)
		}
		parts = append(parts, "js_namespace = ["+strings.Join(ns, ", ")+"]")
	}
	flags := []struct {
		set  bool
		name string
	}{
		{a.Constructor, "constructor"},
		{a.Method, "method"},
		{a.Getter, "getter"},
		{a.Setter, "setter"},
	}
	for _, f := range flags {
		if f.set {
			parts = append(parts, f.name)
		}
	}
	if a.StaticOf != "" {
		parts = append(parts, "static_method_of = "+a.StaticOf)
	}
	if a.Extends != "" {
		parts = append(parts, "extends = "+a.Extends)
	}
	if a.JSName != "" {
		parts = append(parts, "js_name = "+strconv.Quote(a.JSName))
	}
	if len(parts) == 0 {
		return ""
	}
	return "#[wasm_bindgen(" + strings.Join(parts, ", ") + ")]"
}

// Signature renders a function declaration without the trailing semicolon.
func Signature(fn *binding.ExternFunction) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name + ": " + Type(p.Type)
	}
	s := "pub fn " + fn.Name + "(" + strings.Join(params, ", ") + ")"
	if fn.Return != nil {
		s += " -> " + Type(fn.Return)
	}
	return s
}

// Type renders a type with fully qualified paths.
func Type(t binding.Type) string {
	switch tt := t.(type) {
	case binding.Primitive:
		switch tt.Kind {
		case binding.Unit:
			return "()"
		case binding.Str:
			return "::std::string::String"
		}
		return "::core::primitive::" + tt.String()
	case binding.Dynamic:
		return "::wasm_bindgen::JsValue"
	case binding.Named:
		return tt.String()
	case binding.Reference:
		if c, ok := tt.Elem.(binding.Callable); ok {
			return "&(" + callable(c) + ")"
		}
		return "&" + Type(tt.Elem)
	case binding.Optional:
		return "::std::option::Option<" + Type(tt.Elem) + ">"
	case binding.BoxedSlice:
		return "::std::boxed::Box<[" + Type(tt.Elem) + "]>"
	case binding.Tuple:
		parts := make([]string, len(tt.Elems))
		for i, e := range tt.Elems {
			parts[i] = Type(e)
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case binding.Callable:
		return callable(tt)
	}
	return "::wasm_bindgen::JsValue"
}

func callable(c binding.Callable) string {
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = Type(p)
	}
	s := "dyn Fn(" + strings.Join(params, ", ") + ")"
	if c.Return != nil {
		s += " -> " + Type(c.Return)
	}
	return s
}

var _ transpiler.Printer = (*rustPrinter)(nil)
