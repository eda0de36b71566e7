package ast

import "strings"

type Identifier string

type QualifiedIdentifier string

type FullIdentifier string

func (f FullIdentifier) String() string {
	return string(f)
}

func (f FullIdentifier) Name() Identifier {
	return Identifier(f[strings.LastIndex(string(f), ".")+1:])
}

// DataOptionIdentifier names a variant of a sum type, e.g. `Nar.Base.Maybe.Maybe#Just`.
type DataOptionIdentifier string

func (d DataOptionIdentifier) String() string {
	return string(d)
}

// Short drops the owning type from the identifier.
func (d DataOptionIdentifier) Short() string {
	s := string(d)
	return s[strings.LastIndex(s, "#")+1:]
}
