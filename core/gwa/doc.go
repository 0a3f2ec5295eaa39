// Package gwa implements the flat record format spoken by the model engine.
//
// A native record is a single line of delimiter-joined fields. The first field is the
// record keyword (the namespace), optionally carrying a schema version suffix such as
// "MEMB.8"; the second field is the native index.
//
// # SID tags
//
// Out-of-band metadata is attached to the keyword field as a block of bracketed tags:
//
//	MEMB.8:{speckle_app_id:slab-01}{speckle_stream_id:a1b2c3}	4	...
//
// Tag values never contain spaces; FormatSID strips them.
//
// # Commands
//
// Records are issued to the engine through three verbs:
//   - SET: replace the whole record.
//   - SET_AT: insert or replace an entry at a position of an ordered list.
//   - BLANK: remove the record at a native index.
package gwa
