// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package gamecache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// On-disk layout, all integers little endian:
//
//	magic    [4]byte  "ZGC\x00"
//	version  uint16
//	count    uvarint
//	names    count x (uvarint length, bytes)
//	checksum uint32   CRC-32 (IEEE) of everything above
const (
	FormatVersion uint16 = 1

	headerSize   = 6
	checksumSize = 4
)

var magic = [4]byte{'Z', 'G', 'C', 0}

// Encode serialises a record's count and file names. The system name is not
// part of the blob; it's implied by where the blob is stored.
func Encode(rec Record) ([]byte, error) {
	if rec.FileCount != len(rec.FileNames) {
		return nil, fmt.Errorf("%w: count %d, names %d",
			ErrCountMismatch, rec.FileCount, len(rec.FileNames))
	}

	size := headerSize + binary.MaxVarintLen64 + checksumSize
	for _, name := range rec.FileNames {
		size += binary.MaxVarintLen64 + len(name)
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	buf.Write(magic[:])
	buf.Write(binary.LittleEndian.AppendUint16(nil, FormatVersion))
	buf.Write(binary.AppendUvarint(nil, uint64(rec.FileCount)))
	for _, name := range rec.FileNames {
		buf.Write(binary.AppendUvarint(nil, uint64(len(name))))
		buf.WriteString(name)
	}

	sum := crc32.ChecksumIEEE(buf.Bytes())
	buf.Write(binary.LittleEndian.AppendUint32(nil, sum))

	return buf.Bytes(), nil
}

// Decode parses a blob produced by Encode. Any problem with the input is
// reported as a *DecodeError.
func Decode(data []byte) (Record, error) {
	if len(data) < headerSize+1+checksumSize {
		return Record{}, &DecodeError{Reason: fmt.Sprintf("blob too short (%d bytes)", len(data))}
	}

	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return Record{}, &DecodeError{Reason: "bad magic"}
	}

	version := binary.LittleEndian.Uint16(data[len(magic):headerSize])
	if version != FormatVersion {
		return Record{}, &DecodeError{Reason: fmt.Sprintf("unsupported format version %d", version)}
	}

	body := data[:len(data)-checksumSize]
	want := binary.LittleEndian.Uint32(data[len(data)-checksumSize:])
	if got := crc32.ChecksumIEEE(body); got != want {
		return Record{}, &DecodeError{Reason: fmt.Sprintf("checksum mismatch: got %08x, want %08x", got, want)}
	}

	pos := headerSize
	count, n := binary.Uvarint(body[pos:])
	if n <= 0 {
		return Record{}, &DecodeError{Reason: "invalid file count"}
	}
	pos += n

	// every name takes at least one length byte
	if count > uint64(len(body)-pos) {
		return Record{}, &DecodeError{Reason: fmt.Sprintf("file count %d exceeds blob size", count)}
	}

	names := make([]string, 0, int(count))
	for i := uint64(0); i < count; i++ {
		length, n := binary.Uvarint(body[pos:])
		if n <= 0 {
			return Record{}, &DecodeError{Reason: fmt.Sprintf("invalid length for entry %d", i)}
		}
		pos += n

		if length > uint64(len(body)-pos) {
			return Record{}, &DecodeError{
				Reason: fmt.Sprintf("entry %d overruns blob", i),
				Err:    io.ErrUnexpectedEOF,
			}
		}

		names = append(names, string(body[pos:pos+int(length)]))
		pos += int(length)
	}

	if pos != len(body) {
		return Record{}, &DecodeError{Reason: fmt.Sprintf("%d trailing bytes", len(body)-pos)}
	}

	return Record{
		FileCount: len(names),
		FileNames: names,
	}, nil
}
