// Package library is a small set of schemas (books, members and the library
// holding them) used by the CLI and as a worked example of the nanomodel API.
package library

import (
	"regexp"
	"sort"

	"github.com/arthur-debert/nanomodel/nanomodel"
	"github.com/arthur-debert/nanomodel/nanomodel/convert"
	"github.com/arthur-debert/nanomodel/nanomodel/recipe"
	"github.com/arthur-debert/nanomodel/types"
)

// Error codes reported by the library schemas.
const (
	CodeRequired  = 100
	CodeTooLong   = 101
	CodeBadEmail  = 102
	CodeBadISBN   = 103
	CodeBadYear   = 104
	CodeDuplicate = 200
)

const (
	maxTitleLength  = 200
	firstPrintYear  = 1450
	latestPrintYear = 2100
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	isbnPattern  = regexp.MustCompile(`^(97[89])?\d{9}[\dX]$`)
)

// Strategies understood by the library schemas.
const (
	// Public output leaves out member contact data.
	Public = "public"
	// Admin input may set fields members cannot.
	Admin = "admin"
)

// Book is a single title.
var Book = nanomodel.NewSchema("Book").
	Prop("title", nanomodel.PropConfig{
		Cast: nanomodel.CastTo(convert.String),
		Validate: []recipe.Recipe{
			recipe.New(CodeRequired, Required()),
			recipe.New(CodeTooLong, MaxLength(maxTitleLength)),
		},
		FakeValue: "The Left Hand of Darkness",
	}).
	Prop("isbn", nanomodel.PropConfig{
		Cast:      nanomodel.CastWith(normalizeISBN),
		Validate:  []recipe.Recipe{recipe.New(CodeBadISBN, Matches(isbnPattern))},
		Handle:    []recipe.Recipe{recipe.New(CodeDuplicate, DuplicateKey("isbn"))},
		FakeValue: "9780441478125",
	}).
	Prop("year", nanomodel.PropConfig{
		Cast:      nanomodel.CastTo(convert.Integer),
		Validate:  []recipe.Recipe{recipe.New(CodeBadYear, Between(firstPrintYear, latestPrintYear))},
		FakeValue: int64(1969),
	}).
	Prop("tags", nanomodel.PropConfig{
		Cast:         nanomodel.CastTo(convert.String).Array(),
		DefaultValue: []any{},
		EmptyValue:   []any{},
	}).
	MustBuild()

// User is a library member.
var User = nanomodel.NewSchema("User").
	Prop("name", nanomodel.PropConfig{
		Cast:     nanomodel.CastTo(convert.String),
		Validate: []recipe.Recipe{recipe.New(CodeRequired, Required())},
		Setter: func(v any) any {
			if s, ok := v.(string); ok {
				return collapseSpaces(s)
			}
			return v
		},
		FakeValue: "Genly Ai",
	}).
	Prop("email", nanomodel.PropConfig{
		Cast: nanomodel.CastTo(convert.String),
		Validate: []recipe.Recipe{
			recipe.New(CodeRequired, Required()),
			recipe.New(CodeBadEmail, Matches(emailPattern)),
		},
		Handle:       []recipe.Recipe{recipe.New(CodeDuplicate, DuplicateKey("email"))},
		Serializable: types.Tags(Admin),
		FakeValue:    "genly@ekumen.org",
	}).
	Prop("role", nanomodel.PropConfig{
		Cast:         nanomodel.CastTo(convert.String),
		DefaultValue: "member",
		Populatable:  types.Tags(Admin),
	}).
	Prop("book", nanomodel.PropConfig{Cast: nanomodel.CastModel(Book)}).
	Prop("books", nanomodel.PropConfig{Cast: nanomodel.CastModel(Book).Array()}).
	MustBuild()

// Library holds a catalog of books and its members.
var Library = nanomodel.NewSchema("Library").
	Prop("name", nanomodel.PropConfig{
		Cast:     nanomodel.CastTo(convert.String),
		Validate: []recipe.Recipe{recipe.New(CodeRequired, Required())},
	}).
	Prop("opened", nanomodel.PropConfig{Cast: nanomodel.CastTo(convert.Date)}).
	Prop("books", nanomodel.PropConfig{Cast: nanomodel.CastModel(Book).Array()}).
	Prop("members", nanomodel.PropConfig{Cast: nanomodel.CastModel(User).Array()}).
	MustBuild()

var schemas = map[string]*nanomodel.Schema{
	Book.Name():    Book,
	User.Name():    User,
	Library.Name(): Library,
}

// Lookup returns the schema with the given name.
func Lookup(name string) (*nanomodel.Schema, bool) {
	s, ok := schemas[name]
	return s, ok
}

// Names returns the schema names, sorted.
func Names() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
