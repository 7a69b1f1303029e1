// Package iniconf implements an INI configuration library: a parser, an
// order-preserving in-memory configuration model, a merge/augmentation
// engine, a comment- and wrap-preserving serializer, and a rule-based
// validator. See SPEC_FULL.md for the full component breakdown.
package iniconf
