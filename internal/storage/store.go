package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/fieldviz/internal/anim"
)

// Store keeps a history of finished animation runs under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Field     string    `json:"field"`
	Kind      string    `json:"kind"`
	Pattern   string    `json:"pattern"`
	Output    string    `json:"output"`
	Frames    int       `json:"frames"`
	Duration  float64   `json:"duration"`
	FPS       float64   `json:"fps"`
	ColorMap  string    `json:"colormap"`
	VMin      *float64  `json:"vmin,omitempty"`
	VMax      *float64  `json:"vmax,omitempty"`
}

var statsHeader = []string{"frame", "samples", "rows", "cols", "min", "max", "peak_vector"}

// Save records meta and the per-frame stats of a run and returns its id.
func (s *Store) Save(meta RunMetadata, stats []anim.Stats) (string, error) {
	now := s.now()
	meta.ID = fmt.Sprintf("%s_%s_%d", meta.Field, meta.Kind, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(statsHeader); err != nil {
		return "", err
	}
	for _, st := range stats {
		row := []string{
			strconv.Itoa(st.Index),
			strconv.Itoa(st.Samples),
			strconv.Itoa(st.Rows),
			strconv.Itoa(st.Cols),
			strconv.FormatFloat(st.Min, 'g', -1, 64),
			strconv.FormatFloat(st.Max, 'g', -1, 64),
			strconv.FormatFloat(st.PeakVector, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns all recorded runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStats reads back the per-frame stats of a run.
func (s *Store) LoadStats(runID string) ([]anim.Stats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(statsHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []anim.Stats{}, nil
	}

	stats := make([]anim.Stats, 0, len(records)-1)
	for i, rec := range records[1:] {
		st, err := parseStats(rec)
		if err != nil {
			return nil, fmt.Errorf("frames.csv row %d: %w", i+2, err)
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func parseStats(rec []string) (anim.Stats, error) {
	var ints [4]int
	for i := range ints {
		v, err := strconv.Atoi(rec[i])
		if err != nil {
			return anim.Stats{}, err
		}
		ints[i] = v
	}
	var fl [3]float64
	for i := range fl {
		v, err := strconv.ParseFloat(rec[4+i], 64)
		if err != nil {
			return anim.Stats{}, err
		}
		fl[i] = v
	}
	return anim.Stats{
		Index: ints[0], Samples: ints[1], Rows: ints[2], Cols: ints[3],
		Min: fl[0], Max: fl[1], PeakVector: fl[2],
	}, nil
}

// Recorder collects stats from an animator for Save.
type Recorder struct {
	Stats []anim.Stats
}

func (r *Recorder) OnFrame(s anim.Stats) { r.Stats = append(r.Stats, s) }
