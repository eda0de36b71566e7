package common

import (
	"fmt"
	"nar-match/internal/pkg/ast"
)

var (
	NarBaseOptionName = ast.QualifiedIdentifier("Nar.Base.Option")
	NarBaseResultName = ast.QualifiedIdentifier("Nar.Base.Result")

	NarBaseOptionOption = MakeFullIdentifier(NarBaseOptionName, "Option")
	NarBaseResultResult = MakeFullIdentifier(NarBaseResultName, "Result")

	NarBaseOptionSome = MakeDataOptionIdentifier(NarBaseOptionOption, "Some")
	NarBaseOptionNone = MakeDataOptionIdentifier(NarBaseOptionOption, "None")
	NarBaseResultOk   = MakeDataOptionIdentifier(NarBaseResultResult, "Ok")
	NarBaseResultErr  = MakeDataOptionIdentifier(NarBaseResultResult, "Err")
)

func MakeFullIdentifier(moduleName ast.QualifiedIdentifier, name ast.Identifier) ast.FullIdentifier {
	return ast.FullIdentifier(fmt.Sprintf("%s.%s", moduleName, name))
}

func MakeDataOptionIdentifier(dataName ast.FullIdentifier, optionName ast.Identifier) ast.DataOptionIdentifier {
	return ast.DataOptionIdentifier(fmt.Sprintf("%s#%s", dataName, optionName))
}
