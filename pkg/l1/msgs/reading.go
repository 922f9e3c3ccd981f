package msgs

import (
	"fmt"
	"sort"
	"time"

	"github.com/golang/protobuf/proto"
	structpb "github.com/golang/protobuf/ptypes/struct"
)

// Reading is one sample of the compass.
type Reading struct {
	At     time.Time
	Values map[string]float64
	Err    error // non-nil means the sample failed
}

// Names returns the sampled quantity names in order.
func (r *Reading) Names() []string {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Struct converts the reading to a protobuf Struct:
//
//	{"at": "<RFC3339 nano>", "values": {...}, "error": "..."}
func (r *Reading) Struct() *structpb.Struct {
	values := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(r.Values))}
	for name, val := range r.Values {
		values.Fields[name] = &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: val}}
	}
	s := &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"at":     {Kind: &structpb.Value_StringValue{StringValue: r.At.UTC().Format(time.RFC3339Nano)}},
			"values": {Kind: &structpb.Value_StructValue{StructValue: values}},
		},
	}
	if r.Err != nil {
		s.Fields["error"] = &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: r.Err.Error()}}
	}
	return s
}

// Encode serializes the reading.
func (r *Reading) Encode() ([]byte, error) {
	return proto.Marshal(r.Struct())
}

// ReadingError is a sample failure carried over the wire.
type ReadingError struct {
	Message string
}

// Error implements error.
func (e *ReadingError) Error() string {
	return e.Message
}

// DecodeReading parses an encoded reading.
func DecodeReading(data []byte) (*Reading, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	r := &Reading{Values: make(map[string]float64)}
	at := s.Fields["at"].GetStringValue()
	if at == "" {
		return nil, fmt.Errorf("reading: missing timestamp")
	}
	var err error
	if r.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
		return nil, fmt.Errorf("reading: bad timestamp: %v", err)
	}
	if values := s.Fields["values"].GetStructValue(); values != nil {
		for name, val := range values.Fields {
			num, ok := val.GetKind().(*structpb.Value_NumberValue)
			if !ok {
				return nil, fmt.Errorf("reading: %s is not a number", name)
			}
			r.Values[name] = num.NumberValue
		}
	}
	if msg := s.Fields["error"].GetStringValue(); msg != "" {
		r.Err = &ReadingError{Message: msg}
	}
	return r, nil
}

// String formats the reading for display.
func (r *Reading) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s error: %v", r.At.Format(time.RFC3339), r.Err)
	}
	out := r.At.Format(time.RFC3339)
	for _, name := range r.Names() {
		out += fmt.Sprintf(" %s=%.2f", name, r.Values[name])
	}
	return out
}
