// Package hint implements the progressive disclosure policy and the
// request-time hint pipeline.
//
// A hint request carries a question and a requested level from 1 to 4. Each
// level fixes a ceiling on how specific the answer may be:
//
//	1 Concept       theory only, no tools, no commands, no values
//	2 Tool/Area     names the relevant tool or configuration area
//	3 Syntax/Path   the exact command or menu path, parameters explained
//	4 Full Solution the complete worked solution, step by step
//
// Regardless of level, answers may only state concrete values (addresses,
// identifiers, credentials) that appear in the retrieved course material.
// Level conformance is enforced through the directive text handed to the
// generation model; it is best-effort policy, not a mechanically provable
// property, since a generative model is the enforcement mechanism.
package hint
