package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jarwatch/jarwatch/internal/models"
)

// RetentionDays is the rolling window kept per jar; older records are pruned
// on write.
const RetentionDays = 90

// Store is the aggregate of all jar series persisted between runs.
// All mutating operations return an updated copy, so callers thread the
// returned value forward.
type Store struct {
	Jars        []models.JarSeries `json:"jars"`
	LastUpdated string             `json:"lastUpdated"`
}

// Load reads the history file at path. A missing or unreadable file yields an
// empty store: the poller keeps working on a best-effort basis.
func Load(path string) Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return Store{}
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return Store{}
	}
	return s
}

// Save writes the store as pretty-printed JSON via a temp file and an atomic
// rename, so a crash mid-write never corrupts the previous file
func Save(path string, store Store) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write history temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// AddRecord upserts rec into the jar's series and returns an updated copy of
// the store. A record with the same date replaces the existing one, the jar
// name is refreshed, the series stays sorted ascending, and records older
// than the retention window are pruned. The cutoff is computed from
// wall-clock UTC, not from the record set.
func (s Store) AddRecord(jarID, name string, rec models.DailyRecord) Store {
	now := time.Now().UTC()

	out := Store{
		Jars:        make([]models.JarSeries, len(s.Jars)),
		LastUpdated: now.Format(time.RFC3339),
	}
	copy(out.Jars, s.Jars)

	idx := -1
	for i, jar := range out.Jars {
		if jar.JarID == jarID {
			idx = i
			break
		}
	}
	if idx == -1 {
		out.Jars = append(out.Jars, models.JarSeries{JarID: jarID, Name: name})
		idx = len(out.Jars) - 1
	}

	jar := out.Jars[idx]
	jar.Name = name

	records := make([]models.DailyRecord, 0, len(jar.Records)+1)
	cutoff := now.AddDate(0, 0, -RetentionDays).Format(models.DateLayout)
	for _, r := range jar.Records {
		if r.Date == rec.Date || r.Date < cutoff {
			continue
		}
		records = append(records, r)
	}
	if rec.Date >= cutoff {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	jar.Records = records
	out.Jars[idx] = jar
	return out
}

// PreviousRecord returns the record with the latest date strictly before
// refDate for the given jar, or false if the jar is unknown or has no
// earlier record
func (s Store) PreviousRecord(jarID, refDate string) (models.DailyRecord, bool) {
	for _, jar := range s.Jars {
		if jar.JarID != jarID {
			continue
		}
		for i := len(jar.Records) - 1; i >= 0; i-- {
			if jar.Records[i].Date < refDate {
				return jar.Records[i], true
			}
		}
		break
	}
	return models.DailyRecord{}, false
}

// RecentRecords returns the jar's records dated within the last days days,
// ascending by date. Unknown jars yield an empty slice.
func (s Store) RecentRecords(jarID string, days int) []models.DailyRecord {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(models.DateLayout)
	out := []models.DailyRecord{}
	for _, jar := range s.Jars {
		if jar.JarID != jarID {
			continue
		}
		for _, r := range jar.Records {
			if r.Date >= cutoff {
				out = append(out, r)
			}
		}
		break
	}
	return out
}
