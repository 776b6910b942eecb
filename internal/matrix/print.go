package matrix

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the matrix one row per line with '|' after each element.
// An empty matrix prints as "(empty)".
func (m Matrix) Fprint(w io.Writer) error {
	if len(m.data) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			fmt.Fprintf(&sb, "%g|", m.data[i*m.cols+j])
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// String formats the matrix as nested rows, e.g. [[1 2] [3 4]].
func (m Matrix) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, m.data[i*m.cols:(i+1)*m.cols])
	}
	sb.WriteByte(']')
	return sb.String()
}
