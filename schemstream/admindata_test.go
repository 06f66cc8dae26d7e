// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package schemstream

import "testing"

func TestDecodeAdminEnvelopeNonPKCS7(t *testing.T) {
	env, err := decodeAdminEnvelope([]byte{0x01, 0x02, 0x03, 0x04})
	if err != nil {
		t.Fatalf("decodeAdminEnvelope() error = %v; want nil", err)
	}
	if env != nil {
		t.Fatalf("decodeAdminEnvelope() = %+v; want nil for non-PKCS7 data", env)
	}
}

func TestParseAdminDataStreamPlainOpaque(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	ds := NewDataStream(raw)
	ad, err := parseAdminDataStream(ds)
	if err != nil {
		t.Fatalf("parseAdminDataStream() error: %v", err)
	}
	if len(ad.Raw) != len(raw) || ad.Envelope != nil {
		t.Fatalf("parseAdminDataStream() = %+v; want plain opaque Raw, nil Envelope", ad)
	}
}
