// Package aestrace encrypts a single 16-byte block with AES and records every
// intermediate state along the way, so the cipher can be replayed step by
// step.
//
// The engine supports 128, 192 and 256-bit keys, the ECB, CBC and CTR modes
// (one block each) and PKCS7, ANSI X.923 or no padding. Round transforms
// follow FIPS-197, including its column-major state layout, so the
// ciphertext matches any conforming AES implementation.
//
// Basic usage:
//
//	res, err := aestrace.Run([]byte("Hello, AES!"), []byte("7b0dd452e211631d"),
//	    aestrace.ECB, aestrace.PKCS7, aestrace.AES128)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, step := range res.Trace.Steps() {
//	    fmt.Println(step.Label())
//	    fmt.Println(step.State())
//	}
//	fmt.Println("Ciphertext:", res.Ciphertext.Hex)
package aestrace
