// Package prebaked stores baseline analytics: the result of running a map's
// typical scenario once, headless, so gameplay modes can compare a live run
// against it.
package prebaked

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"trafficsandbox.ai/internal/sim/analytics"
)

const version = 1

var ErrNotFound = errors.New("no prebaked analytics")

type Header struct {
	Version int     `json:"version"`
	MapName string  `json:"map_name"`
	Time    float64 `json:"recorded_at"`
}

type file struct {
	Header    Header
	Analytics analytics.Analytics
}

type Store struct {
	dir string
}

func NewStore(dataDir string) *Store {
	return &Store{dir: filepath.Join(dataDir, "prebaked_results")}
}

func (s *Store) Path(mapName string) string {
	return filepath.Join(s.dir, mapName+".bin.zst")
}

func (s *Store) Load(mapName string) (analytics.Analytics, error) {
	h, a, err := Read(s.Path(mapName))
	if err != nil {
		return analytics.New(), err
	}
	if h.MapName != mapName {
		return analytics.New(), fmt.Errorf("prebaked %s: recorded for map %q", mapName, h.MapName)
	}
	return a, nil
}

func (s *Store) Save(mapName string, a analytics.Analytics) error {
	return Write(s.Path(mapName), mapName, a)
}

func Write(path, mapName string, a analytics.Analytics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	body := file{
		Header:    Header{Version: version, MapName: mapName, Time: a.RecordedAt.Seconds()},
		Analytics: a,
	}
	hb, _ := json.Marshal(body.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&body); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

// Read decodes a prebaked file. A missing file yields ErrNotFound; anything
// truncated or corrupt is an error, never a partial value.
func Read(path string) (Header, analytics.Analytics, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Header{}, analytics.New(), fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return Header{}, analytics.New(), err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return Header{}, analytics.New(), err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return Header{}, analytics.New(), fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return Header{}, analytics.New(), fmt.Errorf("decode header: %w", err)
	}
	if h.Version != version {
		return h, analytics.New(), fmt.Errorf("unsupported prebaked version %d", h.Version)
	}

	var body file
	if err := gob.NewDecoder(br).Decode(&body); err != nil {
		return h, analytics.New(), fmt.Errorf("gob decode: %w", err)
	}
	return body.Header, body.Analytics, nil
}
