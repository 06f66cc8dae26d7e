package schemstream

// FuzzParseStream exercises the central dispatcher against an arbitrary
// byte buffer, the Go-domain reshaping of the teacher's legacy
// `func Fuzz(data []byte) int` go-fuzz entry point (fuzz.go), adapted from
// whole-file PE parsing to single-record dispatch since that is where this
// module's "hard engineering" (§1) actually lives.
func FuzzParseStream(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	ds := NewDataStream(data)
	tag, err := ds.ReadU8()
	if err != nil {
		return 0
	}
	ds.Putback()
	pc := &parseContext{version: DefaultFileFormatVersion, textFontTableLen: 1 << 16}
	fd := NewFutureData(ds)
	diag := &Diagnostics{}
	if _, err := pc.dispatch(ds, fd, Structure(tag), diag); err != nil {
		return 0
	}
	return 1
}
