package main

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jrockway/novatel-gps/novatel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/net/trace"
)

var (
	fieldsDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novatel_fields_decoded_total",
		Help: "count of log fields decoded, by field type and result",
	}, []string{"type", "result"})

	linesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novatel_lines_skipped_total",
		Help: "count of input lines that did not name a known log or could not be read",
	})

	decodeEventLog = trace.NewEventLog("decoder", "novatel")
)

// Field is one decoded field.  Value is nil when Error is set.
type Field struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Record is a decoded log body.  A record with field errors is still returned; whether a bad
// field invalidates the whole log is up to whoever reads the record.
type Record struct {
	Log    string  `json:"log"`
	Fields []Field `json:"fields"`
	Errors int     `json:"errors,omitempty"`
}

func (r *Record) add(log *LogLayout, f FieldLayout, v interface{}, err error) {
	if err != nil {
		fieldsDecoded.WithLabelValues(f.Type, "error").Inc()
		decodeEventLog.Errorf("%s.%s: %v", log.Name, f.Name, err)
		r.Fields = append(r.Fields, Field{Name: f.Name, Error: err.Error()})
		r.Errors++
		return
	}
	fieldsDecoded.WithLabelValues(f.Type, "ok").Inc()
	r.Fields = append(r.Fields, Field{Name: f.Name, Value: v})
}

// DecodeASCII decodes the comma-separated tokens of an ASCII log body.  Missing trailing
// tokens are field errors; extra tokens are ignored.
func DecodeASCII(log *LogLayout, tokens []string) Record {
	r := Record{Log: log.Name}
	for i, f := range log.Fields {
		if i >= len(tokens) {
			r.add(log, f, nil, fmt.Errorf("missing token %d", i))
			continue
		}
		v, err := parseToken(f, tokens[i])
		r.add(log, f, v, err)
	}
	return r
}

func parseToken(f FieldLayout, tok string) (interface{}, error) {
	base := *f.Base
	switch f.Type {
	case "string":
		return strings.Trim(tok, `"`), nil
	case "bool":
		return novatel.ParseBool(tok)
	case "int16":
		return novatel.ParseInt16(tok, base)
	case "int32":
		return novatel.ParseInt32(tok, base)
	case "uint8":
		return novatel.ParseUint8(tok, base)
	case "uint16":
		return novatel.ParseUint16(tok, base)
	case "uint32":
		return novatel.ParseUint32(tok, base)
	case "float":
		return novatel.ParseFloat(tok)
	case "double":
		return novatel.ParseDouble(tok)
	}

	mask, err := novatel.ParseUint32(tok, base)
	if err != nil {
		return nil, err
	}
	return decodeStatus(f.Type, mask)
}

func decodeStatus(typ string, mask uint32) (interface{}, error) {
	switch typ {
	case "rxstatus":
		return novatel.DecodeReceiverStatus(mask), nil
	case "extsolstat":
		return novatel.DecodeExtendedSolutionStatus(mask), nil
	case "sigmask":
		return novatel.DecodeSignalMask(mask), nil
	}
	return nil, fmt.Errorf("unknown field type %q", typ)
}

// DecodeBinary decodes a binary log body, without the header or CRC.
func DecodeBinary(log *LogLayout, body []byte) Record {
	r := Record{Log: log.Name}
	for _, f := range log.Fields {
		var b []byte
		if off := *f.Offset; off < len(body) {
			b = body[off:]
		}
		v, err := decodeField(f, b)
		if err != nil {
			err = fmt.Errorf("offset %d: %w", *f.Offset, err)
		}
		r.add(log, f, v, err)
	}
	return r
}

func decodeField(f FieldLayout, b []byte) (interface{}, error) {
	switch f.Type {
	case "bool":
		v, err := novatel.DecodeUint32(b)
		return v != 0, err
	case "int16":
		return novatel.DecodeInt16(b)
	case "int32":
		return novatel.DecodeInt32(b)
	case "uint8":
		return uchar(b)
	case "uint16":
		return novatel.DecodeUint16(b)
	case "uint32":
		return novatel.DecodeUint32(b)
	case "float":
		return novatel.DecodeFloat(b)
	case "double":
		return novatel.DecodeDouble(b)
	case "rxstatus":
		mask, err := novatel.DecodeUint32(b)
		if err != nil {
			return nil, err
		}
		return decodeStatus(f.Type, mask)
	}

	// The solution status and signal masks are single hex bytes in binary logs.
	mask, err := uchar(b)
	if err != nil {
		return nil, err
	}
	return decodeStatus(f.Type, uint32(mask))
}

func uchar(b []byte) (uint8, error) {
	if len(b) < 1 {
		return 0, &novatel.ShortBufferError{Op: "Uchar", Need: 1, Have: len(b)}
	}
	return b[0], nil
}

// decodeLine decodes one input line: "NAME,tok,tok,..." for ASCII logs or "NAME base64" for
// binary logs.
func decodeLine(layout *Layout, line string) (Record, error) {
	name, rest := line, ""
	if i := strings.IndexAny(line, ", "); i >= 0 {
		name, rest = line[:i], line[i+1:]
	}
	log, ok := layout.Log(name)
	if !ok {
		return Record{}, fmt.Errorf("no layout for log %q", name)
	}

	if log.Format == "binary" {
		body, err := base64.StdEncoding.DecodeString(strings.TrimSpace(rest))
		if err != nil {
			return Record{}, fmt.Errorf("%s: base64: %w", name, err)
		}
		return DecodeBinary(log, body), nil
	}

	var tokens []string
	if rest != "" || strings.HasSuffix(line, ",") {
		tokens = strings.Split(rest, ",")
	}
	return DecodeASCII(log, tokens), nil
}
