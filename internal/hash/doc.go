// Package hash provides hardware-accelerated checksums for data integrity.
//
// Snapshot headers and bodies are protected by CRC32-Castagnoli (CRC32C):
// hardware accelerated on x86 (SSE4.2) and ARM (CRC extension), with better
// error detection than CRC32-IEEE, and the checksum used by iSCSI, Btrfs,
// RocksDB and LevelDB.
//
// One-shot:
//
//	checksum := hash.CRC32C(data)
//
// Incremental, without allocating a hash.Hash32:
//
//	crc := hash.Update(0, chunk1)
//	crc = hash.Update(crc, chunk2)
package hash
