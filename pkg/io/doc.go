// Package io reads and writes process-network problem definitions.
//
// # Overview
//
// A problem definition names the materials, the operating units with
// their input and output materials, and optional numeric data: unit
// costs, production caps, and product demands. This package parses
// definitions from several encodings into one neutral [Document],
// compiles documents into finalized [pns.Problem] values, and exports
// documents back out, so the same network can move between hand-written
// files, other tools, and the HTTP API without loss.
//
// # Formats
//
// Four encodings are supported, selected by name or file extension:
//
//   - json (.json): the native encoding, the Document marshalled as-is
//   - toml (.toml): materials and units as named tables
//   - xml (.xml): a <process> element with <material> and <unit> children
//   - text (.txt, .pns): a compact line-oriented form for writing by hand
//
// The native form of the seven-unit example plant:
//
//	{
//	  "name": "plant",
//	  "materials": [
//	    {"name": "e", "kind": "raw"},
//	    {"name": "a", "kind": "product", "cap": 1}
//	  ],
//	  "units": [
//	    {"name": "o1", "inputs": ["b", "f"], "outputs": ["a"], "cost": 34}
//	  ]
//	}
//
// and the same network in text form:
//
//	problem plant
//	raw e
//	product a cap=1
//	unit o1 cost=34: b f -> a
//
// Materials referenced by units but never declared are intermediates;
// only raw materials, products, and capped intermediates need declaring.
//
// # Loading
//
// [Load] accepts a file path, "-" for stdin, or an http(s) URL. Remote
// definitions are fetched through [httputil.Fetcher], which retries
// transient failures and caches responses. The format is detected from
// the extension unless forced via [LoadOptions].
//
//	doc, err := io.Load(ctx, "plant.toml", io.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//
// # Compiling
//
// [Document.Compile] validates the document and builds the finalized
// problem together with the cost and demand tables the bounding
// functions consume:
//
//	model, err := doc.Compile()
//	if err != nil {
//	    return err
//	}
//	msg, err := pns.MSG(model.Problem)
//
// The reverse direction, [FromModel], rebuilds a document from a
// compiled problem for export. Round trips are lossless up to
// declaration order: exports list materials and units alphabetically.
//
// # Identity
//
// [Document.Fingerprint] hashes the document content independent of
// encoding and declaration order. The pipeline keys caches and run
// archives on it, so re-solving an unchanged problem is a cache hit
// even if the file was reformatted or converted in the meantime.
//
// [pns.Problem]: github.com/pgraphlab/pgraph/pkg/pns.Problem
// [httputil.Fetcher]: github.com/pgraphlab/pgraph/pkg/httputil.Fetcher
package io
