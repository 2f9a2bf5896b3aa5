package protocol

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/tinylib/msgp/msgp"
)

// ErrUnknownMessageType is returned for messages with an unexpected type field.
var ErrUnknownMessageType = errors.New("unknown message type")

// Format selects a wire encoding.
type Format int

const (
	JSON Format = iota
	MsgPack
)

// Message is implemented by every protocol message.
type Message interface {
	msgp.Marshaler
	msgp.Unmarshaler
}

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 512)
		return &b
	},
}

// Marshal encodes a message in the given format.
func Marshal(f Format, m Message) ([]byte, error) {
	if f == JSON {
		return json.Marshal(m)
	}

	bp := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bp)

	b, err := m.MarshalMsg((*bp)[:0])
	if err != nil {
		return nil, err
	}
	*bp = b

	// copy so callers never alias the pooled buffer
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Unmarshal decodes a message in the given format.
func Unmarshal(f Format, data []byte, m Message) error {
	if f == JSON {
		return json.Unmarshal(data, m)
	}
	_, err := m.UnmarshalMsg(data)
	return err
}

// DecodeRequest decodes a rank request and checks its type field. An empty
// type is accepted as a rank request.
func DecodeRequest(f Format, data []byte) (*RankRequest, error) {
	var req RankRequest
	if err := Unmarshal(f, data, &req); err != nil {
		return nil, err
	}
	if req.Type == "" {
		req.Type = TypeRank
	}
	if req.Type != TypeRank {
		return &req, ErrUnknownMessageType
	}
	return &req, nil
}
