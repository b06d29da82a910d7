// Package pkg holds the gradassign libraries.
//
// # Overview
//
// gradassign assigns candidates to role slots from three ranked preferences
// each, minimizing the summed rank cost. Numbered copies of a role title
// ("Lab (1)", "Lab (2)") form a clone group: ranking "Lab" ranks every slot
// in the group equally.
//
// # Data flow
//
//	preference table / problem file   [tableio]
//	         ↓
//	clone groups + cost matrix        [roles], [cost]
//	         ↓
//	row warnings                      [validate]
//	         ↓
//	minimum-cost assignment           [hungarian]
//	         ↓
//	labelled report                   [project]
//	         ↓
//	CSV / graph / HTTP JSON           [tableio], [render], [server]
//
// [pipeline] runs the whole chain with caching ([cache]) and run history
// ([store]). [observability] exposes hooks for metrics; [errors] carries the
// error codes shared by every package.
package pkg
