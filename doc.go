// Package formcoerce converts raw form submission values into values that
// match a declared shape.
//
// Raw values are whatever came off the wire after transport extraction:
// strings, nested records (map[string]any), file handles, or nil. A shape is
// described through the Describer interface, which yields a Shape carrying a
// TypeTag, Optional/Nullable flags, and, for composite shapes, the child
// describers.
//
// Every primitive coercion shares one fallback policy for values that are
// missing or blank:
//
//  1. a truthy value is converted;
//  2. otherwise a nullable field becomes nil;
//  3. otherwise an optional field is omitted (ok == false);
//  4. otherwise the type's empty value is returned ("" / nil / false).
//
// Coercion never fails. Unparseable numbers become NaN, unparseable dates
// become InvalidDate (see IsInvalidDate), and values without a matching rule pass through
// unchanged. Judging the result is left to a downstream validator.
//
// Design policy:
//   - Keep the engine in the root package; shape sources live in dsl/,
//     jsonschema/, openapi/ and reflectshape/, the CLI under cmd/formcoerce.
//   - HTTP glue (middleware/) and wire re-encoding (codec/) sit on top of the
//     engine and never change coercion results.
//   - The engine holds no mutable state and is safe for concurrent use.
//
// Typical usage:
//
//	shape := dsl.Object().
//	    Field("age", dsl.Number()).
//	    Field("nickname", dsl.String().Optional())
//	v, ok := formcoerce.CoerceValue(map[string]any{"age": "42", "nickname": ""}, shape)
//	// v == map[string]any{"age": 42.0}, ok == true
package formcoerce
