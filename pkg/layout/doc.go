// Package layout defines the garage layout model: the envelope, the wall
// openings, and the placed zones that the scene builder turns into
// renderable geometry.
//
// All dimensions are in inches. The model uses a top-down coordinate
// convention: a zone's (X, Y) is its offset from the north-west corner of
// the garage, X growing east and Y growing south. The model is constructed
// once (from JSON or TOML) and treated as read-only downstream.
//
// # Plan files
//
// The JSON interchange shape groups openings by kind, matching the layout
// files produced by the intake tooling:
//
//	{
//	  "envelope": {"width": 300, "depth": 300, "height": 146},
//	  "features": {
//	    "garageDoor": {"wall": "S", "position": 54, "width": 192, "height": 84},
//	    "entryDoors": [{"wall": "E", "position": 40, "width": 36, "height": 80}],
//	    "windows": [{"wall": "W", "position": 60, "width": 36, "height": 36, "fromFloor": 48}],
//	    "electricalPanel": {"wall": "E", "position": 240, "width": 24, "height": 36}
//	  },
//	  "zones": [
//	    {"type": "workbench", "name": "Workbench", "x": 30, "y": 0,
//	     "width": 96, "depth": 66, "height": 36, "color": "0xf59e0b"}
//	  ]
//	}
//
// TOML plans carry the same structure and are detected by file extension.
package layout
