// Package markdown hosts the Markdown front end of the converter: a goldmark
// backed lexer producing token streams, front matter stripping, and the
// Service that chains lexing, tree conversion and mention processing behind
// a total Convert call.
package markdown
