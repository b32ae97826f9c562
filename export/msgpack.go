package export

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"textmapper/layout"
)

// MsgpackExporter exports the layout tree as MessagePack
type MsgpackExporter struct{}

// NewMsgpackExporter creates a new MessagePack exporter
func NewMsgpackExporter() *MsgpackExporter {
	return &MsgpackExporter{}
}

// Export writes the map as a MessagePack map keyed by the msgpack tags
func (e *MsgpackExporter) Export(w io.Writer, m *layout.Map) error {
	return msgpack.NewEncoder(w).Encode(m)
}

func (e *MsgpackExporter) GetFileExtension() string {
	return ".msgpack"
}

func (e *MsgpackExporter) GetFormatName() string {
	return "MessagePack"
}

func (e *MsgpackExporter) GetContentType() string {
	return "application/vnd.msgpack"
}
