// Package encryption streams files through the Salsa20 keystream transform.
// Encryption and decryption are the same operation; output keeps the input
// size apart from the 8-byte nonce prefix in random-nonce mode.
// Features concurrent processing, chunked streaming for large files, and
// atomic output writes.
package encryption
