package validator

import "strings"

// reservedWordSource is the exact reserved-word/punctuation-token set
// from spec.md §6, used verbatim by nameIsNotKeyword. It mixes
// punctuation tokens that can never collide with an identifier (",",
// "=>", ...) with true keywords; both are kept since the rule is
// specified as "Name is not in the fixed reserved-word set" without
// carving punctuation out.
const reservedWordSource = `
. , ( ) ; _ { } : + = =>
import package program test mixed with
class inherits object mixin
var const override method native constructor
self super new if else return throw try then always catch
null false true
`

var reservedWords = buildReservedWords()

func buildReservedWords() map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(reservedWordSource) {
		set[word] = true
	}
	return set
}

// IsReservedWord reports whether name is a member of the reserved-word
// set from spec.md §6.
func IsReservedWord(name string) bool {
	return reservedWords[name]
}
