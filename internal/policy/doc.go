// Package policy assembles privacy policy documents from a PolicySettings
// record.
//
// Generation runs in three stages. The selector decides which optional
// sections apply, the numberer turns that selection into a Plan of stable
// ordinals, and one renderer per section produces its blocks. The Generator
// concatenates the rendered sections in canonical order into a
// docmodel.Document.
//
// Everything in this package is total and side-effect free: unknown tokens
// fall back to derived phrases, missing strings become placeholders, and the
// current time is always passed in by the caller.
package policy
