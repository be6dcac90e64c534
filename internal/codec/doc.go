// Package codec renders byte strings for display and decodes them back.
//
//   - [ToHex]/[FromHex]: lowercase hex, the primary ciphertext rendering.
//   - [ToBase64]/[FromBase64]: standard base64 with padding (RFC 4648 §4).
//   - [ToBase64URL]/[FromBase64URL]: URL-safe base64 without padding
//     (RFC 4648 §5), used for transcript signatures.
//   - [ToBinary]/[FromBinary]: a bit string, eight characters per byte.
package codec
