// Package tableio reads and writes the tabular files gradassign works with.
//
// # Preference table
//
// The first row lists the slots; its first cell is "Roles". An optional
// header row starting with "Name" follows. Every other row is a candidate
// and their three choices, best first:
//
//	Roles,Lab (1),Lab (2),Ops,Sales
//	Name,1st,2nd,3rd
//	Alice,Ops,Lab,Sales
//	Bob,Lab (2),Sales,Ops
//
// # Cost matrix
//
// The first cell holds the default cost and the rest of the first row the
// slot titles. Each following row is a candidate name and one cell per slot;
// a blank cell means the default cost.
//
//	3,Lab (1),Lab (2),Ops,Sales
//	Alice,1,1,0,2
//	Bob,,0,2,1
//
// # Results
//
// A Grad,Cost,Role header, one row per matched candidate sorted by name, a
// "name,," row per candidate left without a slot and a ",,title" row per
// slot left empty.
//
// # Problem files
//
// YAML or JSON documents holding the roster and run options; see [Problem].
package tableio
