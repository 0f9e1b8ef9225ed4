package machine

import (
	"strconv"
	"strings"

	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/loader"
	"github.com/ippcode23/ippvm/lang/values"
)

// splitVarRef splits a "var" argument body of the form "FRAME@name" into
// its frame tag and variable name.
func splitVarRef(body string) (frame, name string, err error) {
	idx := strings.IndexByte(body, '@')
	if idx < 0 {
		return "", "", ipperr.BadStructure("malformed variable reference %q", body)
	}
	return body[:idx], body[idx+1:], nil
}

// resolveVar resolves a "var"-kind argument to the frame and name it
// designates, verifying the frame exists.
func (m *Machine) resolveVar(a loader.Arg) (fr *Frame, name string, err error) {
	if a.Kind != "var" {
		return nil, "", ipperr.BadStructure("expected a variable argument, got kind %q", a.Kind)
	}
	frameTag, varName, err := splitVarRef(a.Body)
	if err != nil {
		return nil, "", err
	}
	fr, err = m.Frames.Resolve(frameTag)
	if err != nil {
		return nil, "", err
	}
	return fr, varName, nil
}

// resolveSymbol resolves any "symbol" argument to a concrete Value: a
// variable reference is read from its frame (an uninitialised read is
// exit 56), anything else is decoded from its textual body.
func (m *Machine) resolveSymbol(a loader.Arg) (values.Value, error) {
	if a.Kind == "var" {
		fr, name, err := m.resolveVar(a)
		if err != nil {
			return nil, err
		}
		v, err := fr.Get(name)
		if err != nil {
			return nil, err
		}
		if values.IsUninit(v) {
			return nil, ipperr.MissingValue("variable %s is not initialised", a.Body)
		}
		return v, nil
	}
	return decodeLiteral(a)
}

// decodeLiteral decodes a non-var argument's textual body per its declared
// kind. Invalid literals are exit 32, since they are a structural defect
// of the source program, not a runtime condition.
func decodeLiteral(a loader.Arg) (values.Value, error) {
	switch a.Kind {
	case "int":
		n, err := strconv.ParseInt(a.Body, 10, 64)
		if err != nil {
			return nil, ipperr.BadStructure("invalid int literal %q", a.Body)
		}
		return values.Int(n), nil
	case "float":
		f, err := values.ParseHexFloatStrict(a.Body)
		if err != nil {
			return nil, ipperr.BadStructure("invalid float literal %q", a.Body)
		}
		return f, nil
	case "bool":
		switch a.Body {
		case "true":
			return values.True, nil
		case "false":
			return values.False, nil
		default:
			return nil, ipperr.BadStructure("invalid bool literal %q", a.Body)
		}
	case "nil":
		if a.Body != "nil" {
			return nil, ipperr.BadStructure("invalid nil literal %q", a.Body)
		}
		return values.Nil, nil
	case "string":
		decoded, err := values.DecodeEscapes(a.Body)
		if err != nil {
			return nil, ipperr.BadStructure("invalid string literal: %s", err)
		}
		return values.String(decoded), nil
	default:
		return nil, ipperr.BadStructure("argument of kind %q cannot be resolved to a value", a.Kind)
	}
}
