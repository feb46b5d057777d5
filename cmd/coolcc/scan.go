package main

import (
	"fmt"
	"strings"

	"github.com/coolcc/coolcc/coolerr"
	"github.com/coolcc/coolcc/internal/fileutil"
	"github.com/coolcc/coolcc/scanner"
)

const (
	tokenWS                = "WS"
	tokenCommentLine       = "COMMENT_LINE"
	tokenCommentBlockStart = "COMMENT_BLOCK_START"
	tokenCommentBlockEnd   = "COMMENT_BLOCK_END"
	tokenString            = "STRING"
)

// scanFile compiles the lexer-definition file at defPath and scans
// sourcePath against it, returning the filtered lexeme stream a
// parser would consume (whitespace and line comments dropped, nested
// block comments consumed via a counter) plus the compiled Spec. The
// first LexerStuck marker or unmatched comment block ends the scan
// with an error.
func scanFile(defPath, sourcePath string) (filtered []*scanner.Lexeme, spec *scanner.Spec, err error) {
	defText, err := fileutil.ReadFile(defPath)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.IoError, err)
	}
	spec, err = scanner.Compile(defText)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.InvalidRegex, err)
	}

	srcText, err := fileutil.ReadFile(sourcePath)
	if err != nil {
		return nil, nil, coolerr.New(coolerr.IoError, err)
	}

	s := spec.NewScanner(sourcePath, []byte(srcText))
	blockDepth := 0
	for {
		lx, err := s.Next()
		if err != nil {
			return nil, nil, err
		}
		if lx == nil {
			break
		}
		if lx.Token == "" {
			return nil, nil, coolerr.New(coolerr.LexerStuck, fmt.Errorf("no token matches at this position")).
				At(lx.Loc.File, lx.Loc.Line, lx.Loc.Column, lx.Loc.LineText)
		}

		switch lx.Token {
		case tokenCommentBlockStart:
			blockDepth++
			continue
		case tokenCommentBlockEnd:
			if blockDepth == 0 {
				return nil, nil, coolerr.New(coolerr.LexerStuck, fmt.Errorf("unmatched comment block end")).
					At(lx.Loc.File, lx.Loc.Line, lx.Loc.Column, lx.Loc.LineText)
			}
			blockDepth--
			continue
		}
		if blockDepth > 0 {
			continue
		}
		if lx.Token == tokenWS || lx.Token == tokenCommentLine {
			continue
		}
		filtered = append(filtered, lx)
	}
	if blockDepth > 0 {
		return nil, nil, coolerr.New(coolerr.LexerStuck, fmt.Errorf("comment block never closed"))
	}
	return filtered, spec, nil
}

// writeSidecar writes path+".cclex" per §6: per lexeme, the 1-based
// line number and lower-cased token name, plus (for lexemes that are
// neither keywords nor symbols) a third line with the lexeme text,
// quotes stripped for STRING.
func writeSidecar(path string, lexemes []*scanner.Lexeme, spec *scanner.Spec) error {
	var b strings.Builder
	for _, lx := range lexemes {
		fmt.Fprintf(&b, "%d\n", lx.Loc.Line)
		fmt.Fprintf(&b, "%s\n", strings.ToLower(lx.Token))

		if !spec.Keywords[lx.Token] && !spec.Symbols[lx.Token] {
			text := lx.Text
			if lx.Token == tokenString && len(text) >= 2 {
				text = text[1 : len(text)-1]
			}
			fmt.Fprintf(&b, "%s\n", text)
		}
	}
	if err := fileutil.WriteToFile(path+".cclex", b.String()); err != nil {
		return coolerr.New(coolerr.IoError, err)
	}
	return nil
}
