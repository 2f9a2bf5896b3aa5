package protocol

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// The msgpack encoding is a map keyed by the msg tag names, matching what
// msgp generates for these structs.

// MarshalMsg appends the msgpack encoding of r to b.
func (r *RankRequest) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendMapHeader(b, 3)
	b = msgp.AppendString(b, "type")
	b = msgp.AppendString(b, r.Type)
	b = msgp.AppendString(b, "id")
	b = msgp.AppendString(b, r.ID)
	b = msgp.AppendString(b, "hands")
	b = msgp.AppendArrayHeader(b, uint32(len(r.Hands)))
	for _, h := range r.Hands {
		b = appendStrings(b, h)
	}
	return b, nil
}

// UnmarshalMsg decodes r from b and returns the remaining bytes.
func (r *RankRequest) UnmarshalMsg(b []byte) ([]byte, error) {
	return decodeMap(b, func(key string, b []byte) ([]byte, error) {
		var err error
		switch key {
		case "type":
			r.Type, b, err = msgp.ReadStringBytes(b)
		case "id":
			r.ID, b, err = msgp.ReadStringBytes(b)
		case "hands":
			var n uint32
			n, b, err = readArrayHeader(b)
			if err != nil {
				return b, err
			}
			r.Hands = make([][]string, n)
			for i := range r.Hands {
				r.Hands[i], b, err = readStrings(b)
				if err != nil {
					return b, err
				}
			}
		default:
			b, err = msgp.Skip(b)
		}
		return b, err
	})
}

// MarshalMsg appends the msgpack encoding of r to b.
func (r *RankResult) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendMapHeader(b, 3)
	b = msgp.AppendString(b, "type")
	b = msgp.AppendString(b, r.Type)
	b = msgp.AppendString(b, "id")
	b = msgp.AppendString(b, r.ID)
	b = msgp.AppendString(b, "ranking")
	b = msgp.AppendArrayHeader(b, uint32(len(r.Ranking)))
	for i := range r.Ranking {
		b = r.Ranking[i].appendMsg(b)
	}
	return b, nil
}

// UnmarshalMsg decodes r from b and returns the remaining bytes.
func (r *RankResult) UnmarshalMsg(b []byte) ([]byte, error) {
	return decodeMap(b, func(key string, b []byte) ([]byte, error) {
		var err error
		switch key {
		case "type":
			r.Type, b, err = msgp.ReadStringBytes(b)
		case "id":
			r.ID, b, err = msgp.ReadStringBytes(b)
		case "ranking":
			var n uint32
			n, b, err = readArrayHeader(b)
			if err != nil {
				return b, err
			}
			r.Ranking = make([]Placement, n)
			for i := range r.Ranking {
				b, err = r.Ranking[i].unmarshalMsg(b)
				if err != nil {
					return b, err
				}
			}
		default:
			b, err = msgp.Skip(b)
		}
		return b, err
	})
}

func (p *Placement) appendMsg(b []byte) []byte {
	b = msgp.AppendMapHeader(b, 4)
	b = msgp.AppendString(b, "position")
	b = msgp.AppendInt(b, p.Position)
	b = msgp.AppendString(b, "cards")
	b = appendStrings(b, p.Cards)
	b = msgp.AppendString(b, "rank")
	b = msgp.AppendString(b, p.Rank)
	b = msgp.AppendString(b, "category")
	b = msgp.AppendInt(b, p.Category)
	return b
}

func (p *Placement) unmarshalMsg(b []byte) ([]byte, error) {
	return decodeMap(b, func(key string, b []byte) ([]byte, error) {
		var err error
		switch key {
		case "position":
			p.Position, b, err = msgp.ReadIntBytes(b)
		case "cards":
			p.Cards, b, err = readStrings(b)
		case "rank":
			p.Rank, b, err = msgp.ReadStringBytes(b)
		case "category":
			p.Category, b, err = msgp.ReadIntBytes(b)
		default:
			b, err = msgp.Skip(b)
		}
		return b, err
	})
}

// MarshalMsg appends the msgpack encoding of e to b.
func (e *Error) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendMapHeader(b, 4)
	b = msgp.AppendString(b, "type")
	b = msgp.AppendString(b, e.Type)
	b = msgp.AppendString(b, "id")
	b = msgp.AppendString(b, e.ID)
	b = msgp.AppendString(b, "code")
	b = msgp.AppendString(b, e.Code)
	b = msgp.AppendString(b, "message")
	b = msgp.AppendString(b, e.Message)
	return b, nil
}

// UnmarshalMsg decodes e from b and returns the remaining bytes.
func (e *Error) UnmarshalMsg(b []byte) ([]byte, error) {
	return decodeMap(b, func(key string, b []byte) ([]byte, error) {
		var err error
		switch key {
		case "type":
			e.Type, b, err = msgp.ReadStringBytes(b)
		case "id":
			e.ID, b, err = msgp.ReadStringBytes(b)
		case "code":
			e.Code, b, err = msgp.ReadStringBytes(b)
		case "message":
			e.Message, b, err = msgp.ReadStringBytes(b)
		default:
			b, err = msgp.Skip(b)
		}
		return b, err
	})
}

func decodeMap(b []byte, field func(key string, b []byte) ([]byte, error)) ([]byte, error) {
	n, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for range n {
		var key string
		key, b, err = msgp.ReadStringBytes(b)
		if err != nil {
			return b, err
		}
		b, err = field(key, b)
		if err != nil {
			return b, err
		}
	}
	return b, nil
}

func appendStrings(b []byte, ss []string) []byte {
	b = msgp.AppendArrayHeader(b, uint32(len(ss)))
	for _, s := range ss {
		b = msgp.AppendString(b, s)
	}
	return b
}

// readArrayHeader reads an array length and rejects one longer than the
// bytes left, since every element takes at least one byte.
func readArrayHeader(b []byte) (uint32, []byte, error) {
	n, rest, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return 0, b, err
	}
	if uint64(n) > uint64(len(rest)) {
		return 0, b, fmt.Errorf("%w: array of %d elements in %d bytes", msgp.ErrShortBytes, n, len(rest))
	}
	return n, rest, nil
}

func readStrings(b []byte) ([]string, []byte, error) {
	n, b, err := readArrayHeader(b)
	if err != nil {
		return nil, b, err
	}
	ss := make([]string, n)
	for i := range ss {
		ss[i], b, err = msgp.ReadStringBytes(b)
		if err != nil {
			return nil, b, err
		}
	}
	return ss, b, nil
}
