package nanomodel_test

import (
	"errors"

	"github.com/arthur-debert/nanomodel/nanomodel"
	"github.com/arthur-debert/nanomodel/nanomodel/convert"
	"github.com/arthur-debert/nanomodel/nanomodel/recipe"
)

const codePresent = 422

func present(value any) bool {
	s, _ := value.(string)
	return s != ""
}

var bookSchema = nanomodel.NewSchema("Book").
	Prop("title", nanomodel.PropConfig{
		Cast:     nanomodel.CastTo(convert.String),
		Validate: []recipe.Recipe{recipe.New(codePresent, recipe.Check(present))},
	}).
	Prop("year", nanomodel.PropConfig{Cast: nanomodel.CastTo(convert.Integer)}).
	MustBuild()

var userSchema = nanomodel.NewSchema("User").
	Prop("name", nanomodel.PropConfig{
		Cast:     nanomodel.CastTo(convert.String),
		Validate: []recipe.Recipe{recipe.New(codePresent, recipe.Check(present))},
	}).
	Prop("email", nanomodel.PropConfig{
		Cast: nanomodel.CastTo(convert.String),
		Handle: []recipe.Recipe{
			recipe.New(200, recipe.Match(func(err error) bool { return err.Error() == "foo" })),
			recipe.New(201, recipe.Match(func(err error) bool { return err.Error() == "bar" })),
		},
	}).
	Prop("book", nanomodel.PropConfig{Cast: nanomodel.CastModel(bookSchema)}).
	Prop("books", nanomodel.PropConfig{Cast: nanomodel.CastModel(bookSchema).Array()}).
	MustBuild()

func newUser(data map[string]any, opts ...nanomodel.Option) *nanomodel.Model {
	return userSchema.New(data, opts...)
}

func johnSmith() map[string]any {
	return map[string]any{
		"name": "John Smith",
		"book": map[string]any{"title": "True Detective"},
		"books": []any{
			map[string]any{"title": "Dune", "year": 1965},
			map[string]any{"title": "Solaris", "year": "1961"},
		},
	}
}

var errBoom = errors.New("boom")
