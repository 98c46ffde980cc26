package book

import "bytes"

/* State is the reading progress derived from a book's flags.
* Not stored: it is computed from Finished and Reading, so it can never disagree with them.
 */
type State int

const (
	Unread State = iota + 1
	InProgress
	Done
)

func (s State) String() string {
	switch s {
	case Unread:
		return "unread"
	case InProgress:
		return "reading"
	case Done:
		return "finished"
	}
	return "unknown"
}

// Define how to transform a State into JSON
func (s State) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(s.String())
	buffer.WriteString(`"`)
	return buffer.Bytes(), nil
}

// State derives the reading state. Finished wins over Reading.
func (b Book) State() State {
	switch {
	case b.Finished:
		return Done
	case b.Reading:
		return InProgress
	}
	return Unread
}
