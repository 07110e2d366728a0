package cache

import "github.com/tinylib/msgp/msgp"

// MarshalMsg hand-rolls the wire form msgp's generated code would produce
// for Entry, using the library's append helpers directly rather than
// running `msgp -file entry.go` — this project has no go:generate step,
// so the four fields are appended in a fixed, self-describing order.
func (e *Entry) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, 4)
	b = msgp.AppendInt(b, e.Status)
	b = msgp.AppendString(b, e.ContentType)
	b = msgp.AppendBytes(b, e.Body)
	b = msgp.AppendTime(b, e.StoredAt)
	return b, nil
}

// UnmarshalMsg reverses MarshalMsg, returning any unconsumed suffix of b.
func (e *Entry) UnmarshalMsg(b []byte) ([]byte, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if n != 4 {
		return b, msgp.ArrayError{Wanted: 4, Got: n}
	}
	e.Status, b, err = msgp.ReadIntBytes(b)
	if err != nil {
		return b, err
	}
	e.ContentType, b, err = msgp.ReadStringBytes(b)
	if err != nil {
		return b, err
	}
	e.Body, b, err = msgp.ReadBytesBytes(b, nil)
	if err != nil {
		return b, err
	}
	e.StoredAt, b, err = msgp.ReadTimeBytes(b)
	if err != nil {
		return b, err
	}
	return b, nil
}
