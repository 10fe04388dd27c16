// Package clash declares records whose columns collide.
package clash

// Contact maps two fields onto the same column.
type Contact struct {
	Email   string
	Backup  string `csv:"Email"`
	Phone   string
	Private string `csv:"-"`
}
