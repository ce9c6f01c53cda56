// Package dsl provides Zod-like builders that describe form shapes for
// formcoerce.
//
// Overview
//   - Primitives: String(), Number(), Bool(), Date(), Enum(values...),
//     NativeEnum(values...), Any().
//   - Records: Object().Field(name, d) or Shape(map[string]formcoerce.Describer).
//   - Modifiers: Optional(), Nullable(), Nullish(), Required(). Builders are
//     immutable values; every modifier returns a copy.
//   - Recursion: Lazy(func() formcoerce.Describer) defers resolution so a
//     shape can refer to itself.
//   - Export: JSONSchema() projects a builder into a jsonschema.Schema, which
//     jsonschema.FromSchema reads back.
//
// Example
//
//	signup := dsl.Object().
//	    Field("email", dsl.String()).
//	    Field("age", dsl.Number().Optional()).
//	    Field("birthday", dsl.Date().Nullable()).
//	    Field("plan", dsl.Enum("free", "pro"))
//	v, _ := formcoerce.CoerceValue(map[string]any{"email": "a@b.c", "age": ""}, signup)
//	// v == map[string]any{"email": "a@b.c"}
package dsl
