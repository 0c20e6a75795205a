package a2a

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
)

/*
Part is a discriminated union over text, file and data parts. We keep it
simple by embedding all variant fields in a single struct and pushing the
union rules into the JSON codecs, which avoids heavy interface plumbing
while remaining spec-compliant.

Exactly one variant should be populated according to Kind. For file parts
exactly one of FileURL and FileBytes is set.
*/
type Part struct {
	Kind PartKind

	// Kind == PartKindText.
	Text string

	// Kind == PartKindFile. The wire value is a single string that is
	// either an absolute http/https/file URL or raw base64 bytes.
	FileURL   string
	FileBytes []byte

	// Kind == PartKindData, always base64 on the wire.
	Data []byte

	Metadata map[string]any
}

// PartKind is the discriminator for a Part union.
type PartKind string

const (
	PartKindText PartKind = "text"
	PartKindFile PartKind = "file"
	PartKindData PartKind = "data"
)

// fileURLSchemes are the only schemes recognised as URL references in a
// file part. Anything else (notably data:) falls through to the base64
// branch and almost certainly fails there; clients must send raw base64,
// not data URIs.
var fileURLSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
}

func NewTextPart(text string) Part {
	return Part{Kind: PartKindText, Text: text}
}

func NewFilePart(data []byte) Part {
	return Part{Kind: PartKindFile, FileBytes: data}
}

func NewFileURLPart(rawURL string) Part {
	return Part{Kind: PartKindFile, FileURL: rawURL}
}

func NewDataPart(data []byte) Part {
	return Part{Kind: PartKindData, Data: data}
}

// partWire is the JSON shape of a Part.
type partWire struct {
	Kind     PartKind       `json:"kind"`
	Text     string         `json:"text,omitempty"`
	File     string         `json:"file,omitempty"`
	Data     string         `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

/*
MarshalJSON encodes the part for transport. File parts prefer the URL when
present, else the base64 of the inline bytes. Data parts always emit base64.
*/
func (p Part) MarshalJSON() ([]byte, error) {
	wire := partWire{
		Kind:     p.Kind,
		Metadata: p.Metadata,
	}

	switch p.Kind {
	case PartKindText:
		wire.Text = p.Text
	case PartKindFile:
		if p.FileURL != "" {
			wire.File = p.FileURL
		} else {
			wire.File = base64.StdEncoding.EncodeToString(p.FileBytes)
		}
	case PartKindData:
		wire.Data = base64.StdEncoding.EncodeToString(p.Data)
	default:
		return nil, fmt.Errorf("unknown part kind: %q", p.Kind)
	}

	return json.Marshal(wire)
}

/*
UnmarshalJSON decodes a part from transport. For file parts the value is
first parsed as an absolute URL; only the http, https and file schemes take
the URL branch. Otherwise the value is attempted as base64. When both
fail the payload is malformed.
*/
func (p *Part) UnmarshalJSON(data []byte) error {
	var wire partWire

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*p = Part{Kind: wire.Kind, Metadata: wire.Metadata}

	switch wire.Kind {
	case PartKindText:
		p.Text = wire.Text
	case PartKindFile:
		if u, err := url.Parse(wire.File); err == nil && fileURLSchemes[u.Scheme] {
			p.FileURL = wire.File
			return nil
		}

		decoded, err := base64.StdEncoding.DecodeString(wire.File)
		if err != nil {
			return fmt.Errorf("file part is neither an http/https/file URL nor base64: %w", err)
		}
		p.FileBytes = decoded
	case PartKindData:
		decoded, err := base64.StdEncoding.DecodeString(wire.Data)
		if err != nil {
			return fmt.Errorf("data part is not valid base64: %w", err)
		}
		p.Data = decoded
	default:
		return fmt.Errorf("unknown part kind: %q", wire.Kind)
	}

	return nil
}
