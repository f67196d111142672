// Package dispatch ranks scheduling candidates by business priority and
// packs them into the two van timelines. It is the last stage of a planning
// run: grouping produces candidates, dispatch decides who rides when.
package dispatch
