// Package match provides header normalization and field name matching.
//
// A header matches a field only when the normalized header equals the field
// identifier under case folding (FindFold). Edit-distance scoring (Rank,
// Suggest) is used solely to offer "did you mean" hints for headers that
// did not match.
package match
