// Package selection reduces probed streams plus ordered keep/drop rules to a
// deterministic resolution of copy, re-encode, and drop decisions.
//
// Rules form a closed set of predicate kinds dispatched by exhaustive switch.
// Resolution semantics are strictly first-match-wins over the declared rule
// order; streams no rule matches fall back to the policy's required Fallback
// action (Unknown for unrecognized stream kinds). Resolve is a pure function
// and is safe to call concurrently with different inputs.
package selection
