// Package modelio reads and writes threat-model graphs as files.
//
// # Overview
//
// Two formats are supported:
//
//   - JSON: the tool's own interchange format, a direct serialization of
//     [model.Graph]. Round-trips losslessly.
//   - TMX: the external desktop tool's XML dialect, converted through
//     [tmx]. Round-trips with the documented lossy coercions.
//
// [ReadJSON] and [WriteJSON] operate on readers and writers; [ImportJSON]
// and [ExportJSON] wrap them for file paths. [DecodeTMX] reads a handle
// fully and hands the text to [tmx.Decode]; [ImportTMX] and [ExportTMX] are
// the file-path equivalents.
//
// # JSON Format
//
//	{
//	  "nodes": [{"id": "a", "kind": "process", "name": "API"}],
//	  "edges": [{"id": "e", "kind": "flow", "source": "a", "targets": ["a"]}],
//	  "boundaries": [],
//	  "metadata": {"name": "Demo"}
//	}
//
// [model.Graph]: github.com/threatforge/threatforge/pkg/model
// [tmx]: github.com/threatforge/threatforge/pkg/tmx
package modelio
