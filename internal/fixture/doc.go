// Package fixture decodes serialized bound trees.
//
// A fixture describes one method body together with the types and
// symbols it references. Fixtures are written in CUE (primary) or YAML;
// both decode into the same Document and are resolved into a bound.Node
// tree plus the bound.Model that backs it.
//
// Names are resolved once per fixture: every reference to the same type
// or symbol name yields the same pointer, and a syntax node declared with
// an id can be shared by several bound nodes through a ref. Decoding and
// resolution problems are reported as *LoadError values carrying the
// source position when one is known.
package fixture
