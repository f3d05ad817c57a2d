// Package keyfile stores public and private keys of any registered scheme
// in a small checksummed envelope:
//
//	"PQCK" | version | kind | len(scheme) | scheme | len(key) | key | xxhash64
//
// where len(key) is a big endian uint32 and the checksum is a big endian
// uint64 over everything that precedes it.
package keyfile

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/bwesterb/byteswriter"
	"github.com/cespare/xxhash"
	"github.com/edsrzf/mmap-go"
	"github.com/nightlyone/lockfile"

	"github.com/bwesterb/go-pqc/internal/misc"
)

type Error = misc.Error

// Kind tells public and private keys apart.
type Kind uint8

const (
	PublicKey Kind = iota + 1
	PrivateKey
)

func (k Kind) String() string {
	switch k {
	case PublicKey:
		return "public key"
	case PrivateKey:
		return "private key"
	}
	return "unknown"
}

const (
	magic   = "PQCK"
	version = 1

	headerSize   = len(magic) + 3
	checksumSize = 8
)

// A key together with the name of the scheme it belongs to.
type File struct {
	Kind   Kind
	Scheme string
	Key    []byte
}

// Returns the size of the envelope of f.
func (f *File) size() int {
	return headerSize + len(f.Scheme) + 4 + len(f.Key) + checksumSize
}

// Encodes f into its envelope.
func (f *File) MarshalBinary() ([]byte, error) {
	return f.Bytes()
}

// Like MarshalBinary, but with this package's error type.
func (f *File) Bytes() ([]byte, Error) {
	if len(f.Scheme) == 0 || len(f.Scheme) > 255 {
		return nil, misc.Usagef("Scheme name must be 1 to 255 bytes")
	}
	if f.Kind != PublicKey && f.Kind != PrivateKey {
		return nil, misc.Usagef("Unknown key kind %d", f.Kind)
	}
	buf := make([]byte, f.size())
	w := byteswriter.NewWriter(buf)
	w.Write([]byte(magic))
	w.Write([]byte{version, byte(f.Kind), byte(len(f.Scheme))})
	w.Write([]byte(f.Scheme))
	binary.Write(w, binary.BigEndian, uint32(len(f.Key)))
	w.Write(f.Key)

	body := len(buf) - checksumSize
	binary.BigEndian.PutUint64(buf[body:], xxhash.Sum64(buf[:body]))
	return buf, nil
}

// Decodes an envelope.  The key is copied out of buf.
func Parse(buf []byte) (*File, Error) {
	if len(buf) < headerSize+4+checksumSize || string(buf[:len(magic)]) != magic {
		return nil, misc.Errorf("Not a key file")
	}
	if buf[len(magic)] != version {
		return nil, misc.Errorf("Unsupported key file version %d", buf[len(magic)])
	}

	body := len(buf) - checksumSize
	if binary.BigEndian.Uint64(buf[body:]) != xxhash.Sum64(buf[:body]) {
		return nil, misc.Errorf("Key file checksum mismatch")
	}

	f := &File{Kind: Kind(buf[len(magic)+1])}
	nameLen := int(buf[len(magic)+2])
	off := headerSize
	if off+nameLen+4 > body {
		return nil, misc.Errorf("Key file is truncated")
	}
	f.Scheme = string(buf[off : off+nameLen])
	off += nameLen
	keyLen := int(binary.BigEndian.Uint32(buf[off:]))
	off += 4
	if off+keyLen != body {
		return nil, misc.Errorf("Key file has wrong length")
	}
	f.Key = append([]byte{}, buf[off:body]...)
	return f, nil
}

// Takes the lock path.lock, which guards writes to path.
func lock(path string) (lockfile.Lockfile, Error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", misc.WrapErrorf(err,
			"Could not turn %s into an absolute path", path)
	}

	lockFilePath := absPath + ".lock"
	flock, err := lockfile.New(lockFilePath)
	if err != nil {
		return "", misc.WrapErrorf(err, "Failed to create lockfile %s",
			lockFilePath)
	}

	err = flock.TryLock()
	if _, ok := err.(interface {
		Temporary() bool
	}); ok {
		misc.Log.Logf("%s is locked by another process", path)
		return "", misc.Lockedf("%s is locked", path)
	}
	if err != nil {
		return "", misc.WrapErrorf(err, "Failed to lock %s", path)
	}
	return flock, nil
}

// Writes f to path.  Fails with an error for which Locked() holds if
// another process is writing path.  Private keys are only readable by
// the owner.
func Write(path string, f *File) Error {
	buf, err := f.Bytes()
	if err != nil {
		return err
	}

	flock, err := lock(path)
	if err != nil {
		return err
	}
	defer flock.Unlock()

	perm := os.FileMode(0644)
	if f.Kind == PrivateKey {
		perm = 0600
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf, perm); err != nil {
		return misc.WrapErrorf(err, "Failed to write %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return misc.WrapErrorf(err, "Failed to move %s to %s", tmpPath, path)
	}
	return nil
}

// Reads the key file at path.
func Read(path string) (*File, Error) {
	buf, closer, err := MapFile(path)
	if err != nil {
		return nil, err
	}
	defer closer()
	return Parse(buf)
}

// Maps the file at path into memory.  The returned function releases the
// mapping; buf must not be used after it is called.
func MapFile(path string) (buf []byte, closer func(), err Error) {
	file, err2 := os.Open(path)
	if err2 != nil {
		return nil, nil, misc.WrapErrorf(err2, "Failed to open %s", path)
	}
	defer file.Close()

	info, err2 := file.Stat()
	if err2 != nil {
		return nil, nil, misc.WrapErrorf(err2, "Failed to stat %s", path)
	}

	// Empty files cannot be mapped.
	if info.Size() == 0 {
		return []byte{}, func() {}, nil
	}

	mem, err2 := mmap.Map(file, mmap.RDONLY, 0)
	if err2 != nil {
		return nil, nil, misc.WrapErrorf(err2, "Failed to mmap %s", path)
	}
	return mem, func() { mem.Unmap() }, nil
}
