// Package acvp loads NIST ACVP test vectors as published in the
// ACVP-Server repository: a prompt.json.gz and an expectedResults.json.gz
// per algorithm and mode.
package acvp

import (
	"bytes"
	"compress/gzip"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
)

// HexBytes is a byte slice that is hex encoded in JSON.
type HexBytes []byte

func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// Key identifies a test case within a vector set.
type Key struct {
	TgID, TcID int
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load decodes dir/prompt.json.gz into prompt and
// dir/expectedResults.json.gz into results.  It returns an error
// satisfying os.IsNotExist when the vectors are not present.
func Load(dir string, prompt, results interface{}) error {
	buf, err := readGzip(filepath.Join(dir, "prompt.json.gz"))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, prompt); err != nil {
		return err
	}
	buf, err = readGzip(filepath.Join(dir, "expectedResults.json.gz"))
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, results)
}
