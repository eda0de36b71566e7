package ast

import "fmt"

// Location points at a span of source text. The zero value is an empty
// location, used for synthesized patterns and witnesses.
type Location struct {
	filePath    string
	fileContent []rune
	start       uint32
	end         uint32
}

func NewLocation(filePath string, content []rune, start uint32, end uint32) Location {
	return Location{
		filePath:    filePath,
		fileContent: content,
		start:       start,
		end:         end,
	}
}

func NewLocationCursor(filePath string, content []rune, start uint32) Location {
	return NewLocation(filePath, content, start, start)
}

// NewLocationSrc resolves a zero based line/column pair to an offset in content.
func NewLocationSrc(filePath string, content []rune, line uint32, column uint32) Location {
	var lineCount, columnCount uint32
	for i, r := range content {
		if lineCount == line && columnCount == column {
			return NewLocationCursor(filePath, content, uint32(i))
		}
		if r == '\n' {
			lineCount++
			columnCount = 0
		} else {
			columnCount++
		}
	}
	return NewLocationCursor(filePath, content, uint32(len(content)))
}

func (loc Location) EqualsTo(other Location) bool {
	return loc.filePath == other.filePath && loc.start == other.start && loc.end == other.end
}

func (loc Location) IsEmpty() bool {
	return loc.filePath == ""
}

func (loc Location) CursorString() string {
	if loc.IsEmpty() {
		return ""
	}
	line, col, _, _ := loc.GetLineAndColumn()
	return fmt.Sprintf("%s:%d:%d", loc.filePath, line, col)
}

func (loc Location) String() string {
	if loc.IsEmpty() {
		return "<unknown>"
	}
	return loc.CursorString()
}

func (loc Location) GetLineAndColumn() (startLine, startColumn, endLine, endColumn int) {
	line, column := 1, 1
	startLine, startColumn = 1, 1
	endLine, endColumn = 1, 1
	for i := 0; i <= len(loc.fileContent); i++ {
		if uint32(i) == loc.start {
			startLine, startColumn = line, column
		}
		if uint32(i) == loc.end {
			endLine, endColumn = line, column
			break
		}
		if i < len(loc.fileContent) && loc.fileContent[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

func (loc Location) FilePath() string {
	return loc.filePath
}
