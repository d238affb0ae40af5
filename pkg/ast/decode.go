package ast

import (
	"encoding/json"
	"fmt"
)

// Parsing the Language's concrete syntax is out of scope for this
// module (spec.md §1): the AST is assumed to already exist, produced by
// an external parser. DecodeEnvironment is the one seam through which
// an external tool — a real parser, or a test fixture — hands this
// module a tree: a JSON document shaped like the Node variants in this
// package, keyed by a "kind" discriminant.
//
// rawNode mirrors every field any variant might carry; only the ones
// relevant to Kind are read for a given node.
type rawNode struct {
	Kind       string            `json:"kind"`
	Id         Id                `json:"id"`
	Name       string            `json:"name,omitempty"`
	Alias      string            `json:"alias,omitempty"`
	IsVarArg   bool              `json:"isVarArg,omitempty"`
	Override   bool              `json:"override,omitempty"`
	Native     bool              `json:"native,omitempty"`
	LiteralKnd string            `json:"literalKind,omitempty"`
	Value      json.RawMessage   `json:"value,omitempty"`
	Selector   string            `json:"selector,omitempty"`
	Members    []json.RawMessage `json:"members,omitempty"`
	Parameters []json.RawMessage `json:"parameters,omitempty"`
	Sentences  []json.RawMessage `json:"sentences,omitempty"`
	Arguments  []json.RawMessage `json:"arguments,omitempty"`
	Catches    []json.RawMessage `json:"catches,omitempty"`
	Mixins     []json.RawMessage `json:"mixins,omitempty"`

	Reference     json.RawMessage `json:"reference,omitempty"`
	Superclass    json.RawMessage `json:"superclass,omitempty"`
	Body          json.RawMessage `json:"body,omitempty"`
	Then          json.RawMessage `json:"then,omitempty"`
	Else          json.RawMessage `json:"else,omitempty"`
	Always        json.RawMessage `json:"always,omitempty"`
	Condition     json.RawMessage `json:"condition,omitempty"`
	Receiver      json.RawMessage `json:"receiver,omitempty"`
	Initializer   json.RawMessage `json:"initializer,omitempty"`
	ReturnValue   json.RawMessage `json:"returnValue,omitempty"`
	ThrowValue    json.RawMessage `json:"throwValue,omitempty"`
	AssignValue   json.RawMessage `json:"assignValue,omitempty"`
	BaseCall      json.RawMessage `json:"baseCall,omitempty"`
	ExceptionType json.RawMessage `json:"exceptionType,omitempty"`
}

// DecodeEnvironment parses a JSON-encoded tree rooted at a Package and
// builds the Environment over it.
func DecodeEnvironment(data []byte) (*Environment, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: decoding environment: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	pkg, ok := node.(*Package)
	if !ok {
		return nil, fmt.Errorf("ast: root node must be a Package, got kind %q", raw.Kind)
	}
	return NewEnvironment(pkg)
}

func decodeRaw(data json.RawMessage) (Node, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return decodeNode(raw)
}

func decodeMany(items []json.RawMessage) ([]Node, error) {
	out := make([]Node, 0, len(items))
	for _, item := range items {
		n, err := decodeRaw(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeReference(data json.RawMessage) (*Reference, error) {
	n, err := decodeRaw(data)
	if err != nil || n == nil {
		return nil, err
	}
	ref, ok := n.(*Reference)
	if !ok {
		return nil, fmt.Errorf("ast: expected a Reference node, got %s", n.Kind())
	}
	return ref, nil
}

func decodeBody(data json.RawMessage) (*Body, error) {
	n, err := decodeRaw(data)
	if err != nil || n == nil {
		return nil, err
	}
	body, ok := n.(*Body)
	if !ok {
		return nil, fmt.Errorf("ast: expected a Body node, got %s", n.Kind())
	}
	return body, nil
}

func decodeExpression(data json.RawMessage) (Expression, error) {
	n, err := decodeRaw(data)
	if err != nil || n == nil {
		return nil, err
	}
	expr, ok := n.(Expression)
	if !ok {
		return nil, fmt.Errorf("ast: expected an expression node, got %s", n.Kind())
	}
	return expr, nil
}

func decodeNode(raw rawNode) (Node, error) {
	switch raw.Kind {
	case "Package":
		members, err := decodeMany(raw.Members)
		if err != nil {
			return nil, err
		}
		pkgMembers := make([]PackageMember, 0, len(members))
		for _, m := range members {
			pm, ok := m.(PackageMember)
			if !ok {
				return nil, fmt.Errorf("ast: node kind %s cannot be a Package member", m.Kind())
			}
			pkgMembers = append(pkgMembers, pm)
		}
		return &Package{Id: raw.Id, Name: raw.Name, Members: pkgMembers}, nil

	case "Import":
		ref, err := decodeReference(raw.Reference)
		if err != nil {
			return nil, err
		}
		return &Import{Id: raw.Id, Reference: ref, Alias: raw.Alias}, nil

	case "Class":
		members, err := decodeClassMembers(raw.Members)
		if err != nil {
			return nil, err
		}
		mixins, err := decodeReferences(raw.Mixins)
		if err != nil {
			return nil, err
		}
		super, err := decodeReference(raw.Superclass)
		if err != nil {
			return nil, err
		}
		return &Class{Id: raw.Id, Name: raw.Name, Superclass: super, Mixins: mixins, Members: members}, nil

	case "Singleton":
		members, err := decodeClassMembers(raw.Members)
		if err != nil {
			return nil, err
		}
		return &Singleton{Id: raw.Id, Name: raw.Name, Members: members}, nil

	case "Mixin":
		members, err := decodeClassMembers(raw.Members)
		if err != nil {
			return nil, err
		}
		return &Mixin{Id: raw.Id, Name: raw.Name, Members: members}, nil

	case "Field":
		init, err := decodeExpression(raw.Initializer)
		if err != nil {
			return nil, err
		}
		return &Field{Id: raw.Id, Name: raw.Name, Initializer: init}, nil

	case "Parameter":
		return &Parameter{Id: raw.Id, Name: raw.Name, IsVarArg: raw.IsVarArg}, nil

	case "Method":
		params, err := decodeParameters(raw.Parameters)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(raw.Body)
		if err != nil {
			return nil, err
		}
		return &Method{Id: raw.Id, Name: raw.Name, Parameters: params, Body: body, Override: raw.Override, Native: raw.Native}, nil

	case "Constructor":
		params, err := decodeParameters(raw.Parameters)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(raw.Body)
		if err != nil {
			return nil, err
		}
		baseCallNode, err := decodeRaw(raw.BaseCall)
		if err != nil {
			return nil, err
		}
		var baseCall *Send
		if baseCallNode != nil {
			send, ok := baseCallNode.(*Send)
			if !ok {
				return nil, fmt.Errorf("ast: Constructor.baseCall must be a Send, got %s", baseCallNode.Kind())
			}
			baseCall = send
		}
		return &Constructor{Id: raw.Id, Parameters: params, Body: body, BaseCall: baseCall}, nil

	case "Body":
		sentences, err := decodeMany(raw.Sentences)
		if err != nil {
			return nil, err
		}
		out := make([]Sentence, 0, len(sentences))
		for _, s := range sentences {
			sn, ok := s.(Sentence)
			if !ok {
				return nil, fmt.Errorf("ast: node kind %s cannot be a Sentence", s.Kind())
			}
			out = append(out, sn)
		}
		return &Body{Id: raw.Id, Sentences: out}, nil

	case "Variable":
		init, err := decodeExpression(raw.Initializer)
		if err != nil {
			return nil, err
		}
		return &Variable{Id: raw.Id, Name: raw.Name, Initializer: init}, nil

	case "Return":
		value, err := decodeExpression(raw.ReturnValue)
		if err != nil {
			return nil, err
		}
		return &Return{Id: raw.Id, Value: value}, nil

	case "Assignment":
		ref, err := decodeReference(raw.Reference)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(raw.AssignValue)
		if err != nil {
			return nil, err
		}
		return &Assignment{Id: raw.Id, Reference: ref, Value: value}, nil

	case "Reference":
		return &Reference{Id: raw.Id, Name: raw.Name}, nil

	case "Self":
		return &Self{Id: raw.Id}, nil

	case "Super":
		args, err := decodeArguments(raw.Arguments)
		if err != nil {
			return nil, err
		}
		return &Super{Id: raw.Id, Arguments: args}, nil

	case "New":
		ref, err := decodeReference(raw.Reference)
		if err != nil {
			return nil, err
		}
		args, err := decodeArguments(raw.Arguments)
		if err != nil {
			return nil, err
		}
		return &New{Id: raw.Id, Reference: ref, Arguments: args}, nil

	case "Literal":
		kind, value, err := decodeLiteralValue(raw.LiteralKnd, raw.Value)
		if err != nil {
			return nil, err
		}
		return &Literal{Id: raw.Id, Kind_: kind, Value: value}, nil

	case "Send":
		receiver, err := decodeExpression(raw.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := decodeArguments(raw.Arguments)
		if err != nil {
			return nil, err
		}
		return &Send{Id: raw.Id, Receiver: receiver, Selector: raw.Selector, Arguments: args}, nil

	case "If":
		cond, err := decodeExpression(raw.Condition)
		if err != nil {
			return nil, err
		}
		then, err := decodeBody(raw.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeBody(raw.Else)
		if err != nil {
			return nil, err
		}
		return &If{Id: raw.Id, Condition: cond, Then: then, Else: els}, nil

	case "Throw":
		value, err := decodeExpression(raw.ThrowValue)
		if err != nil {
			return nil, err
		}
		return &Throw{Id: raw.Id, Value: value}, nil

	case "Catch":
		excType, err := decodeReference(raw.ExceptionType)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(raw.Body)
		if err != nil {
			return nil, err
		}
		return &Catch{Id: raw.Id, Name: raw.Name, ExceptionType: excType, Body: body}, nil

	case "Try":
		body, err := decodeBody(raw.Body)
		if err != nil {
			return nil, err
		}
		always, err := decodeBody(raw.Always)
		if err != nil {
			return nil, err
		}
		catchNodes, err := decodeMany(raw.Catches)
		if err != nil {
			return nil, err
		}
		catches := make([]*Catch, 0, len(catchNodes))
		for _, c := range catchNodes {
			catch, ok := c.(*Catch)
			if !ok {
				return nil, fmt.Errorf("ast: Try.catches must be Catch nodes, got %s", c.Kind())
			}
			catches = append(catches, catch)
		}
		return &Try{Id: raw.Id, Body: body, Catches: catches, Always: always}, nil

	case "Program":
		body, err := decodeBody(raw.Body)
		if err != nil {
			return nil, err
		}
		return &Program{Id: raw.Id, Name: raw.Name, Body: body}, nil

	case "Test":
		body, err := decodeBody(raw.Body)
		if err != nil {
			return nil, err
		}
		return &Test{Id: raw.Id, Name: raw.Name, Body: body}, nil

	case "Describe":
		body, err := decodeBody(raw.Body)
		if err != nil {
			return nil, err
		}
		return &Describe{Id: raw.Id, Name: raw.Name, Body: body}, nil

	default:
		return nil, fmt.Errorf("ast: unknown node kind %q", raw.Kind)
	}
}

func decodeClassMembers(items []json.RawMessage) ([]ClassMember, error) {
	nodes, err := decodeMany(items)
	if err != nil {
		return nil, err
	}
	out := make([]ClassMember, 0, len(nodes))
	for _, n := range nodes {
		cm, ok := n.(ClassMember)
		if !ok {
			return nil, fmt.Errorf("ast: node kind %s cannot be a class member", n.Kind())
		}
		out = append(out, cm)
	}
	return out, nil
}

func decodeParameters(items []json.RawMessage) ([]*Parameter, error) {
	nodes, err := decodeMany(items)
	if err != nil {
		return nil, err
	}
	out := make([]*Parameter, 0, len(nodes))
	for _, n := range nodes {
		p, ok := n.(*Parameter)
		if !ok {
			return nil, fmt.Errorf("ast: expected a Parameter node, got %s", n.Kind())
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeReferences(items []json.RawMessage) ([]*Reference, error) {
	nodes, err := decodeMany(items)
	if err != nil {
		return nil, err
	}
	out := make([]*Reference, 0, len(nodes))
	for _, n := range nodes {
		ref, ok := n.(*Reference)
		if !ok {
			return nil, fmt.Errorf("ast: expected a Reference node, got %s", n.Kind())
		}
		out = append(out, ref)
	}
	return out, nil
}

func decodeArguments(items []json.RawMessage) ([]Expression, error) {
	nodes, err := decodeMany(items)
	if err != nil {
		return nil, err
	}
	out := make([]Expression, 0, len(nodes))
	for _, n := range nodes {
		expr, ok := n.(Expression)
		if !ok {
			return nil, fmt.Errorf("ast: expected an expression node, got %s", n.Kind())
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeLiteralValue(kind string, raw json.RawMessage) (LiteralKind, any, error) {
	switch kind {
	case "number":
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, err
		}
		return LiteralNumber, v, nil
	case "string":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, err
		}
		return LiteralString, v, nil
	case "boolean":
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, nil, err
		}
		return LiteralBoolean, v, nil
	case "null":
		return LiteralNull, nil, nil
	default:
		return 0, nil, fmt.Errorf("ast: unknown literal kind %q", kind)
	}
}
