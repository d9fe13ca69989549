package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"martianoff/tsbind/internal/foreign"
)

func (b *builder) signature(n *sitter.Node) foreign.Signature {
	tp := n.ChildByFieldName("type_parameters")
	if tp == nil {
		tp = childOfType(n, "type_parameters")
	}
	fp := n.ChildByFieldName("parameters")
	if fp == nil {
		fp = childOfType(n, "formal_parameters")
	}
	sig := foreign.Signature{
		TypeParams: b.typeParams(tp),
		Params:     b.params(fp),
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		sig.Return = b.typ(ret)
	}
	return sig
}

func (b *builder) typeParams(n *sitter.Node) []foreign.TypeParam {
	var out []foreign.TypeParam
	for _, c := range named(n) {
		if c.Type() != "type_parameter" {
			continue
		}
		name := c.ChildByFieldName("name")
		if name == nil {
			name = firstNamed(c)
		}
		out = append(out, foreign.TypeParam{Name: b.text(name)})
	}
	return out
}

func (b *builder) params(n *sitter.Node) []foreign.Param {
	var out []foreign.Param
	for _, c := range named(n) {
		if c.Type() != "required_parameter" && c.Type() != "optional_parameter" {
			continue
		}
		p := foreign.Param{
			Type:     b.typ(c.ChildByFieldName("type")),
			Optional: c.Type() == "optional_parameter",
		}
		pattern := c.ChildByFieldName("pattern")
		if pattern == nil {
			pattern = childOfType(c, "this", "identifier", "rest_pattern", "object_pattern", "array_pattern")
		}
		if pattern != nil && pattern.Type() == "rest_pattern" {
			p.Rest = true
			pattern = firstNamed(pattern)
		}
		switch {
		case pattern == nil:
		case pattern.Type() == "object_pattern":
			p.Pattern = foreign.PatternObject
		case pattern.Type() == "array_pattern":
			p.Pattern = foreign.PatternArray
		default:
			p.Name = b.text(pattern)
		}
		out = append(out, p)
	}
	return out
}

func (b *builder) key(n *sitter.Node) foreign.PropKey {
	text := b.text(n)
	switch n.Type() {
	case "private_property_identifier":
		return foreign.PropKey{Kind: foreign.KeyPrivate, Name: strings.TrimPrefix(text, "#")}
	case "string":
		return foreign.PropKey{Kind: foreign.KeyString, Name: unquote(text)}
	case "number":
		return foreign.PropKey{Kind: foreign.KeyNumber, Name: text}
	case "computed_property_name":
		return foreign.PropKey{Kind: foreign.KeyComputed, Name: text}
	}
	return foreign.Ident(text)
}

func (b *builder) access(n *sitter.Node) foreign.Access {
	switch b.text(childOfType(n, "accessibility_modifier")) {
	case "public":
		return foreign.AccessPublic
	case "private":
		return foreign.AccessPrivate
	case "protected":
		return foreign.AccessProtected
	}
	return foreign.AccessNone
}

func (b *builder) classMembers(body *sitter.Node) []foreign.ClassMember {
	if body == nil {
		return nil
	}
	var out []foreign.ClassMember
	prev := ""
	for i := 0; i < int(body.ChildCount()); i++ {
		c := body.Child(i)
		switch c.Type() {
		case "method_definition", "method_signature", "abstract_method_signature":
			out = append(out, b.method(c))
		case "public_field_definition":
			out = append(out, b.property(c))
		case "index_signature":
			out = append(out, &foreign.IndexSignature{Pos: pos(c)})
		case "class_static_block":
			out = append(out, &foreign.StaticBlock{Pos: pos(c)})
		case ";":
			if prev == "{" || prev == ";" {
				out = append(out, &foreign.EmptyMember{Pos: pos(c)})
			}
		case "comment", "decorator":
			continue
		}
		prev = c.Type()
	}
	return out
}

func (b *builder) method(n *sitter.Node) foreign.ClassMember {
	name := n.ChildByFieldName("name")
	key := b.key(name)
	static := hasTokenBefore(n, name, "static")
	if key.Name == "constructor" && !static && (key.Kind == foreign.KeyIdent || key.Kind == foreign.KeyString) {
		fp := n.ChildByFieldName("parameters")
		if fp == nil {
			fp = childOfType(n, "formal_parameters")
		}
		return &foreign.Constructor{Key: key, Access: b.access(n), Params: b.params(fp), Pos: pos(n)}
	}
	m := &foreign.Method{
		Key:      key,
		Access:   b.access(n),
		Static:   static,
		Optional: hasToken(n, "?"),
		Sig:      b.signature(n),
		Pos:      pos(n),
	}
	switch {
	case hasTokenBefore(n, name, "get"):
		m.Kind = foreign.MethodGetter
	case hasTokenBefore(n, name, "set"):
		m.Kind = foreign.MethodSetter
	}
	return m
}

func (b *builder) property(n *sitter.Node) *foreign.Property {
	name := n.ChildByFieldName("name")
	return &foreign.Property{
		Key:      b.key(name),
		Access:   b.access(n),
		Static:   hasTokenBefore(n, name, "static"),
		Optional: hasToken(n, "?"),
		Readonly: hasTokenBefore(n, name, "readonly"),
		Type:     b.typ(n.ChildByFieldName("type")),
		Pos:      pos(n),
	}
}

// typeMembers converts an interface body or an object type literal.
func (b *builder) typeMembers(body *sitter.Node) []foreign.TypeMember {
	var out []foreign.TypeMember
	for _, c := range named(body) {
		if m := b.typeMember(c); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (b *builder) typeMember(n *sitter.Node) foreign.TypeMember {
	switch n.Type() {
	case "property_signature":
		name := n.ChildByFieldName("name")
		return &foreign.PropertySignature{
			Key:      b.key(name),
			Readonly: hasTokenBefore(n, name, "readonly"),
			Optional: hasToken(n, "?"),
			Type:     b.typ(n.ChildByFieldName("type")),
			Pos:      pos(n),
		}
	case "method_signature":
		name := n.ChildByFieldName("name")
		key := b.key(name)
		sig := b.signature(n)
		switch {
		case hasTokenBefore(n, name, "get"):
			return &foreign.GetterSignature{Key: key, Type: sig.Return, Pos: pos(n)}
		case hasTokenBefore(n, name, "set"):
			s := &foreign.SetterSignature{Key: key, Pos: pos(n)}
			if len(sig.Params) > 0 {
				s.Param = sig.Params[0]
			}
			return s
		}
		return &foreign.MethodSignature{Key: key, Optional: hasToken(n, "?"), Sig: sig, Pos: pos(n)}
	case "call_signature":
		return &foreign.CallSignature{Sig: b.signature(n), Pos: pos(n)}
	case "construct_signature":
		return &foreign.ConstructSignature{Sig: b.signature(n), Pos: pos(n)}
	case "index_signature":
		return &foreign.IndexSignature{Pos: pos(n)}
	}
	return nil
}
