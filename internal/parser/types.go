package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"martianoff/tsbind/internal/foreign"
)

// typ converts a type node. A nil node, meaning no annotation, yields nil.
func (b *builder) typ(n *sitter.Node) foreign.Type {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "type_annotation", "opting_type_annotation", "omitting_type_annotation":
		return b.typ(firstNamed(n))
	case "predefined_type":
		return b.predefined(b.text(n))
	case "type_identifier", "identifier":
		if kw, ok := foreign.LookupKeyword(b.text(n)); ok {
			return foreign.Kw(kw)
		}
		return foreign.Ref(b.text(n))
	case "nested_type_identifier":
		return b.ref(n, nil)
	case "generic_type":
		var args []foreign.Type
		for _, a := range named(n.ChildByFieldName("type_arguments")) {
			args = append(args, b.typ(a))
		}
		return b.ref(n.ChildByFieldName("name"), args)
	case "union_type":
		return &foreign.UnionType{Types: b.flatten(n, "union_type")}
	case "intersection_type":
		return &foreign.IntersectionType{Types: b.flatten(n, "intersection_type")}
	case "array_type":
		return &foreign.ArrayType{Elem: b.typ(firstNamed(n))}
	case "tuple_type":
		return b.tuple(n)
	case "parenthesized_type":
		return &foreign.ParenType{Inner: b.typ(firstNamed(n))}
	case "function_type":
		return &foreign.FunctionType{Sig: b.functionType(n)}
	case "constructor_type":
		return &foreign.ConstructorType{Sig: b.functionType(n)}
	case "object_type":
		for _, c := range named(n) {
			if c.Type() == "index_signature" && childOfType(c, "mapped_type_clause") != nil {
				return &foreign.MappedType{}
			}
		}
		return &foreign.TypeLiteral{Members: b.typeMembers(n)}
	case "literal_type":
		if inner := firstNamed(n); inner != nil {
			return b.typ(inner)
		}
		return &foreign.LiteralType{Text: b.text(n)}
	case "null":
		return foreign.Kw(foreign.KwNull)
	case "undefined":
		return foreign.Kw(foreign.KwUndefined)
	case "string", "number", "true", "false", "unary_expression", "template_string":
		return &foreign.LiteralType{Text: b.text(n)}
	case "this_type", "this":
		return &foreign.ThisType{}
	case "lookup_type":
		parts := named(n)
		if len(parts) == 2 {
			return &foreign.IndexedAccessType{Object: b.typ(parts[0]), Index: b.typ(parts[1])}
		}
	case "type_query":
		return &foreign.TypeQuery{Expr: strings.TrimSpace(strings.TrimPrefix(b.text(n), "typeof"))}
	case "index_type_query":
		return &foreign.TypeOperator{Op: "keyof", Inner: b.typ(firstNamed(n))}
	case "readonly_type":
		return &foreign.TypeOperator{Op: "readonly", Inner: b.typ(firstNamed(n))}
	case "conditional_type":
		return &foreign.ConditionalType{}
	case "infer_type":
		return &foreign.InferType{Name: b.text(firstNamed(n))}
	case "optional_type":
		return &foreign.OptionalType{Elem: b.typ(firstNamed(n))}
	case "rest_type":
		return &foreign.RestType{Elem: b.typ(firstNamed(n))}
	case "type_predicate", "type_predicate_annotation", "asserts", "asserts_annotation":
		return &foreign.PredicateType{}
	}
	if strings.HasPrefix(b.text(n), "import(") {
		return importType(b.text(n), nil)
	}
	return &foreign.UnknownType{Kind: strings.ReplaceAll(n.Type(), "_", " ")}
}

func (b *builder) predefined(text string) foreign.Type {
	if text == "unique symbol" {
		return &foreign.TypeOperator{Op: "unique", Inner: foreign.Kw(foreign.KwSymbol)}
	}
	if kw, ok := foreign.LookupKeyword(text); ok {
		return foreign.Kw(kw)
	}
	return &foreign.UnknownType{Kind: text}
}

// ref builds a reference from a possibly dotted name node.
func (b *builder) ref(name *sitter.Node, args []foreign.Type) foreign.Type {
	text := b.text(name)
	if strings.HasPrefix(text, "import(") {
		return importType(text, args)
	}
	segs := strings.Split(text, ".")
	for i := range segs {
		segs[i] = strings.TrimSpace(segs[i])
	}
	return &foreign.TypeRef{Name: segs, Args: args}
}

// importType splits `import("m").A.B` into its module and qualifier.
func importType(text string, args []foreign.Type) *foreign.ImportType {
	text = strings.TrimPrefix(text, "import(")
	end := strings.IndexByte(text, ')')
	if end < 0 {
		return &foreign.ImportType{Module: unquote(strings.TrimSpace(text)), Args: args}
	}
	t := &foreign.ImportType{Module: unquote(strings.TrimSpace(text[:end])), Args: args}
	rest := text[end+1:]
	if i := strings.IndexByte(rest, '<'); i >= 0 {
		rest = rest[:i]
	}
	for _, seg := range strings.Split(rest, ".") {
		if seg = strings.TrimSpace(seg); seg != "" {
			t.Qualifier = append(t.Qualifier, seg)
		}
	}
	return t
}

func (b *builder) flatten(n *sitter.Node, kind string) []foreign.Type {
	var out []foreign.Type
	for _, c := range named(n) {
		if c.Type() == kind {
			out = append(out, b.flatten(c, kind)...)
			continue
		}
		out = append(out, b.typ(c))
	}
	return out
}

func (b *builder) functionType(n *sitter.Node) foreign.Signature {
	sig := foreign.Signature{
		TypeParams: b.typeParams(childOfType(n, "type_parameters")),
		Params:     b.params(childOfType(n, "formal_parameters")),
	}
	ret := n.ChildByFieldName("return_type")
	if ret == nil {
		if parts := named(n); len(parts) > 0 {
			last := parts[len(parts)-1]
			if last.Type() != "formal_parameters" && last.Type() != "type_parameters" {
				ret = last
			}
		}
	}
	sig.Return = b.typ(ret)
	return sig
}

func (b *builder) tuple(n *sitter.Node) *foreign.TupleType {
	t := &foreign.TupleType{}
	for _, e := range named(n) {
		switch e.Type() {
		case "required_parameter", "optional_parameter":
			label := e.ChildByFieldName("pattern")
			if label == nil {
				label = childOfType(e, "identifier", "rest_pattern")
			}
			var elem foreign.Type = b.typ(e.ChildByFieldName("type"))
			if label != nil && label.Type() == "rest_pattern" {
				elem = &foreign.RestType{Elem: elem}
				label = firstNamed(label)
			}
			if e.Type() == "optional_parameter" {
				elem = &foreign.OptionalType{Elem: elem}
			}
			t.Elems = append(t.Elems, foreign.TupleElement{Label: b.text(label), Type: elem})
		case "named_tuple_member", "labeled_tuple_type_member":
			parts := named(e)
			t.Elems = append(t.Elems, foreign.TupleElement{
				Label: b.text(parts[0]),
				Type:  b.typ(parts[len(parts)-1]),
			})
		default:
			t.Elems = append(t.Elems, foreign.TupleElement{Type: b.typ(e)})
		}
	}
	return t
}
