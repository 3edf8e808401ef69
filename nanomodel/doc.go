// Package nanomodel is a stateful property/model graph for runtime data
// modeling.
//
// A Model is an ordered set of named properties (Prop). Each property keeps
// its current value, the value it had at the last commit and its declared
// default, empty and fake values. Values written to a property pass through
// an optional setter and a cast before they are stored, which is how nested
// models and arrays of nested models are built from plain input:
//
//	book := nanomodel.NewSchema("Book").
//		Prop("title", nanomodel.PropConfig{Cast: nanomodel.CastTo(convert.String)}).
//		MustBuild()
//
//	user := nanomodel.NewSchema("User").
//		Prop("name", nanomodel.PropConfig{}).
//		Prop("books", nanomodel.PropConfig{Cast: nanomodel.CastModel(book).Array()}).
//		MustBuild()
//
//	u := user.New(map[string]any{
//		"name":  "John Smith",
//		"books": []any{map[string]any{"title": "True Detective"}},
//	})
//
// Properties carry validate and handle recipes (see package recipe). A tree
// is validated depth-first in declaration order, so the resulting error list
// is reproducible:
//
//	err := u.Validate(ctx, nanomodel.ValidateOptions{})
//	var verr *nanomodel.ValidationError
//	if errors.As(err, &verr) {
//		// verr.Errors holds {path, code} entries such as books.0.title: 422
//	}
//
// Error lists can be applied back with ApplyErrors, which makes the format
// suitable for round-tripping through an API.
//
// A Model is not safe for concurrent use. At most one Validate or Handle may
// be in flight per tree.
package nanomodel
