package prefs

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	recordMagic   = "PLAINPAD_PREFS"
	recordVersion = uint16(1)

	// magic + version + payload length + crc32
	recordHeaderSize = len(recordMagic) + 2 + 4 + 4
)

const (
	flagMatchCase uint16 = 1 << iota
	flagMatchWholeWord
	flagShowLineNumbers
	flagShowStatusBar
	flagWordWrap
)

var (
	ErrInvalidMagic   = errors.New("prefs: invalid magic")
	ErrUnsupportedVer = errors.New("prefs: unsupported version")
	ErrChecksum       = errors.New("prefs: checksum mismatch")
	ErrMalformed      = errors.New("prefs: malformed record")
)

// Record layout (little endian):
//
//	magic | u16 version | u32 payload length | u32 crc32(payload) | zlib(payload)
//
// The payload lists every field in declaration order.
func encodeRecord(p *Preferences) ([]byte, error) {
	payload := make([]byte, 0, 256)
	payload = appendString(payload, p.RecentDir)
	payload = appendU32(payload, uint32(len(p.RecentPaths)))
	for _, path := range p.RecentPaths {
		payload = appendString(payload, path)
	}
	payload = appendString(payload, p.FindTarget)
	payload = appendString(payload, p.ReplaceTarget)
	payload = appendU16(payload, packFlags(p))
	payload = appendU32(payload, uint32(int32(p.Zoom)))
	payload = appendString(payload, p.Font.Family)
	payload = appendString(payload, p.Font.Path)
	payload = appendU32(payload, uint32(int32(p.Font.SizePt)))
	payload = appendString(payload, p.Language)

	compressed, err := compressBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("prefs: compress: %w", err)
	}
	out := make([]byte, 0, recordHeaderSize+len(compressed))
	out = append(out, recordMagic...)
	out = appendU16(out, recordVersion)
	out = appendU32(out, uint32(len(payload)))
	out = appendU32(out, crc32.ChecksumIEEE(payload))
	return append(out, compressed...), nil
}

func decodeRecord(b []byte) (*Preferences, error) {
	if len(b) < recordHeaderSize || string(b[:len(recordMagic)]) != recordMagic {
		return nil, ErrInvalidMagic
	}
	b = b[len(recordMagic):]
	if v := binary.LittleEndian.Uint16(b[:2]); v != recordVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVer, v)
	}
	size := binary.LittleEndian.Uint32(b[2:6])
	sum := binary.LittleEndian.Uint32(b[6:10])
	payload, err := decompressBytes(b[10:], size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if uint32(len(payload)) != size || crc32.ChecksumIEEE(payload) != sum {
		return nil, ErrChecksum
	}

	p := &Preferences{}
	var ok bool
	if p.RecentDir, payload, ok = readString(payload); !ok {
		return nil, fmt.Errorf("%w: recent dir", ErrMalformed)
	}
	var count uint32
	if count, payload, ok = readU32(payload); !ok {
		return nil, fmt.Errorf("%w: recent count", ErrMalformed)
	}
	p.RecentPaths = make([]string, 0, min(int(count), 64))
	for i := uint32(0); i < count; i++ {
		var path string
		if path, payload, ok = readString(payload); !ok {
			return nil, fmt.Errorf("%w: recent path %d", ErrMalformed, i)
		}
		p.RecentPaths = append(p.RecentPaths, path)
	}
	if p.FindTarget, payload, ok = readString(payload); !ok {
		return nil, fmt.Errorf("%w: find target", ErrMalformed)
	}
	if p.ReplaceTarget, payload, ok = readString(payload); !ok {
		return nil, fmt.Errorf("%w: replace target", ErrMalformed)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("%w: flags", ErrMalformed)
	}
	unpackFlags(p, binary.LittleEndian.Uint16(payload[:2]))
	payload = payload[2:]
	var zoom, size32 uint32
	if zoom, payload, ok = readU32(payload); !ok {
		return nil, fmt.Errorf("%w: zoom", ErrMalformed)
	}
	p.Zoom = int(int32(zoom))
	if p.Font.Family, payload, ok = readString(payload); !ok {
		return nil, fmt.Errorf("%w: font family", ErrMalformed)
	}
	if p.Font.Path, payload, ok = readString(payload); !ok {
		return nil, fmt.Errorf("%w: font path", ErrMalformed)
	}
	if size32, payload, ok = readU32(payload); !ok {
		return nil, fmt.Errorf("%w: font size", ErrMalformed)
	}
	p.Font.SizePt = int(int32(size32))
	if p.Language, _, ok = readString(payload); !ok {
		return nil, fmt.Errorf("%w: language", ErrMalformed)
	}
	return p, nil
}

func packFlags(p *Preferences) uint16 {
	var flags uint16
	set := func(on bool, bit uint16) {
		if on {
			flags |= bit
		}
	}
	set(p.MatchCase, flagMatchCase)
	set(p.MatchWholeWord, flagMatchWholeWord)
	set(p.ShowLineNumbers, flagShowLineNumbers)
	set(p.ShowStatusBar, flagShowStatusBar)
	set(p.WordWrap, flagWordWrap)
	return flags
}

func unpackFlags(p *Preferences, flags uint16) {
	p.MatchCase = flags&flagMatchCase != 0
	p.MatchWholeWord = flags&flagMatchWholeWord != 0
	p.ShowLineNumbers = flags&flagShowLineNumbers != 0
	p.ShowStatusBar = flags&flagShowStatusBar != 0
	p.WordWrap = flags&flagWordWrap != 0
}

func appendString(dst []byte, s string) []byte {
	dst = appendU32(dst, uint32(len(s)))
	return append(dst, s...)
}

func readString(src []byte) (string, []byte, bool) {
	ln, src, ok := readU32(src)
	if !ok || uint64(len(src)) < uint64(ln) {
		return "", nil, false
	}
	return string(src[:ln]), src[ln:], true
}

func readU32(src []byte) (uint32, []byte, bool) {
	if len(src) < 4 {
		return 0, nil, false
	}
	return binary.LittleEndian.Uint32(src[:4]), src[4:], true
}

func appendU16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func appendU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func compressBytes(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(in); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressBytes inflates at most size+1 bytes so an oversized payload fails
// the length check without being read in full.
func decompressBytes(in []byte, size uint32) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, int64(size)+1))
}
