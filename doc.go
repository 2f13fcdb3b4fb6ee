// Package compoundbind maps compound storage types onto Go record types.
//
// A compound type is an ordered list of named, typed members, as found in
// scientific data formats and columnar storage layers. This library
// introspects such types through a backend, infers how each member maps
// onto a field of a Go struct (or onto dynamic map keys), and moves
// records in and out of packed byte buffers.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	compoundbind/        Root package with the high-level entry points
//	├── binder/          Descriptor extraction, field binding, packed codec
//	├── engine/          Backend contract, sessions, scoped handle release
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Describe a compound type and bind it to a struct:
//
//	b := compoundbind.Open(backend)
//	defer b.Session().Close()
//
//	desc, err := b.Describe(handle, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mappings, err := b.Bind(desc, MyRecord{}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	enc := binder.NewEncoder(desc, mappings)
//	buf, err := enc.Encode(MyRecord{Name: "ada"})
//
// Member offsets are always the packed running sum of the preceding
// member sizes, independent of any layout the backend reports.
package compoundbind
