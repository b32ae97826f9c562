package importer

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"textmapper/core"
)

// MsgpackImporter reads documents encoded as a MessagePack map.
type MsgpackImporter struct{}

// NewMsgpackImporter creates a new MessagePack importer
func NewMsgpackImporter() *MsgpackImporter {
	return &MsgpackImporter{}
}

// CanImport reports whether content starts with a map header.
func (i *MsgpackImporter) CanImport(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	c := content[0]
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

func (i *MsgpackImporter) Import(content []byte) (*core.Document, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields(true)
	var doc core.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("msgpack: %w", err)
	}
	return &doc, nil
}

func (i *MsgpackImporter) GetFormatName() string {
	return "MessagePack"
}

func (i *MsgpackImporter) GetFileExtensions() []string {
	return []string{".msgpack", ".mpk"}
}
