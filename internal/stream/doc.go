// Package stream reads delimited text files one line at a time.
//
// A Reader never holds more than one line in memory and closes its file as
// soon as the last line has been read, a read fails, or Close is called.
package stream
