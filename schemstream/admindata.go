// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "go.mozilla.org/pkcs7"

// AdminEnvelope is the optional PKCS7-signed lock block some "protected"
// libraries wrap around their AdminData stream, per SPEC_FULL.md's domain
// stack wiring of go.mozilla.org/pkcs7 (adapted from the teacher's
// security.go certificate-parsing pattern). Decoding is best-effort: a
// stream that is not actually PKCS7-wrapped is treated as plain opaque
// AdminData, matching §9's "opaque byte regions" design note.
type AdminEnvelope struct {
	SignerCount int
	ContentInfo []byte
}

// decodeAdminEnvelope attempts to parse raw as a PKCS7 SignedData envelope.
// It returns (nil, nil) when raw does not parse as PKCS7 at all, since that
// simply means this AdminData stream was not lock-protected.
func decodeAdminEnvelope(raw []byte) (*AdminEnvelope, error) {
	p7, err := pkcs7.Parse(raw)
	if err != nil {
		return nil, nil
	}
	return &AdminEnvelope{
		SignerCount: len(p7.Signers),
		ContentInfo: p7.Content,
	}, nil
}
